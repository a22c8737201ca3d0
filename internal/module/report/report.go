package report

import (
	"strconv"

	"campus-event-system/internal/global/response"

	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// EventPopularity 活动热度报表，按报名数降序
func EventPopularity(c *gin.Context) {
	collegeID := c.Query("college_id")
	eventType := c.Query("event_type")
	limit := queryInt(c, "limit", 10)

	key := cacheKey("event-popularity", collegeID, eventType, strconv.Itoa(limit))
	var rows []eventPopularityRow
	if !getCached(key, &rows) {
		var err error
		rows, err = selectEventPopularity(collegeID, eventType, limit)
		if err != nil {
			log.Error("生成活动热度报表失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		setCached(key, rows)
	}

	response.Success(c, rows, "Event popularity report generated successfully")
}

type participationPage struct {
	Rows  []StudentParticipationRow `json:"rows"`
	Total int64                     `json:"total"`
}

// StudentParticipation 学生参与度报表，分页
func StudentParticipation(c *gin.Context) {
	collegeID := c.Query("college_id")
	studentID := c.Query("student_id")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	key := cacheKey("student-participation", collegeID, studentID, strconv.Itoa(page), strconv.Itoa(limit))
	var result participationPage
	if !getCached(key, &result) {
		rows, total, err := selectStudentParticipation(collegeID, studentID, (page-1)*limit, limit)
		if err != nil {
			log.Error("生成学生参与度报表失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		result = participationPage{Rows: rows, Total: total}
		setCached(key, result)
	}

	response.Page(c, result.Rows, response.NewPagination(page, limit, result.Total))
}

// TopActiveStudents 最活跃学生榜，默认取前 3
func TopActiveStudents(c *gin.Context) {
	collegeID := c.Query("college_id")
	limit := queryInt(c, "limit", 3)

	key := cacheKey("top-active-students", collegeID, strconv.Itoa(limit))
	var rows []topActiveStudentRow
	if !getCached(key, &rows) {
		var err error
		rows, err = selectTopActiveStudents(collegeID, limit)
		if err != nil {
			log.Error("生成活跃学生榜失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		setCached(key, rows)
	}

	response.Success(c, rows, "Top "+strconv.Itoa(limit)+" most active students report generated successfully")
}

// EventTypeAnalysis 按活动类型聚合分析
func EventTypeAnalysis(c *gin.Context) {
	collegeID := c.Query("college_id")

	key := cacheKey("event-type-analysis", collegeID)
	var rows []eventTypeAnalysisRow
	if !getCached(key, &rows) {
		var err error
		rows, err = selectEventTypeAnalysis(collegeID)
		if err != nil {
			log.Error("生成活动类型分析失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		setCached(key, rows)
	}

	response.Success(c, rows, "Event type analysis generated successfully")
}

// AttendanceSummary 按活动统计出席/缺席分布
func AttendanceSummary(c *gin.Context) {
	eventID := c.Query("event_id")
	collegeID := c.Query("college_id")

	key := cacheKey("attendance-summary", eventID, collegeID)
	var rows []attendanceSummaryRow
	if !getCached(key, &rows) {
		var err error
		rows, err = selectAttendanceSummary(eventID, collegeID)
		if err != nil {
			log.Error("生成出席汇总失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		setCached(key, rows)
	}

	response.Success(c, rows, "Attendance summary generated successfully")
}

// FeedbackSummary 按活动统计评分直方图
func FeedbackSummary(c *gin.Context) {
	eventID := c.Query("event_id")
	collegeID := c.Query("college_id")

	key := cacheKey("feedback-summary", eventID, collegeID)
	var rows []feedbackSummaryRow
	if !getCached(key, &rows) {
		var err error
		rows, err = selectFeedbackSummary(eventID, collegeID)
		if err != nil {
			log.Error("生成反馈汇总失败", "error", err)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		setCached(key, rows)
	}

	response.Success(c, rows, "Feedback summary generated successfully")
}
