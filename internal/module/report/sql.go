package report

import (
	"time"

	"campus-event-system/internal/global/database"

	"gorm.io/gorm"
)

// 报表统一用相关子查询取各表计数，连表后 COUNT 会被笛卡尔积放大
// 百分比分母为 0 时整体为 NULL，用指针字段接住

type eventPopularityRow struct {
	EventID              uint      `gorm:"column:event_id" json:"id" excel:"活动ID"`
	Title                string    `gorm:"column:title" json:"title" excel:"活动名称"`
	EventType            string    `gorm:"column:event_type" json:"event_type" excel:"活动类型"`
	StartDate            time.Time `gorm:"column:start_date" json:"start_date" excel:"-"`
	Location             string    `gorm:"column:location" json:"location" excel:"地点"`
	CollegeName          string    `gorm:"column:college_name" json:"college_name" excel:"学院"`
	TotalRegistrations   int64     `gorm:"column:total_registrations" json:"total_registrations" excel:"报名数"`
	TotalAttendance      int64     `gorm:"column:total_attendance" json:"total_attendance" excel:"出席数"`
	AttendancePercentage *float64  `gorm:"column:attendance_percentage" json:"attendance_percentage" excel:"出席率"`
	AverageRating        *float64  `gorm:"column:average_rating" json:"average_rating" excel:"平均评分"`
	FeedbackCount        int64     `gorm:"column:feedback_count" json:"feedback_count" excel:"反馈数"`
}

const eventPopularitySelect = `
	e.id AS event_id,
	e.title,
	e.event_type,
	e.start_date,
	e.location,
	c.name AS college_name,
	(SELECT COUNT(*) FROM registration r WHERE r.event_id = e.id AND r.status = 'registered') AS total_registrations,
	(SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id AND a.status = 'present') AS total_attendance,
	ROUND((SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id AND a.status = 'present') * 100.0 /
		NULLIF((SELECT COUNT(*) FROM registration r WHERE r.event_id = e.id AND r.status = 'registered'), 0), 2) AS attendance_percentage,
	(SELECT ROUND(AVG(f.rating), 2) FROM feedback f WHERE f.event_id = e.id) AS average_rating,
	(SELECT COUNT(*) FROM feedback f WHERE f.event_id = e.id) AS feedback_count`

func selectEventPopularity(collegeID, eventType string, limit int) ([]eventPopularityRow, error) {
	query := database.DB.Table("event e").
		Select(eventPopularitySelect).
		Joins("JOIN college c ON c.id = e.college_id")
	if collegeID != "" {
		query = query.Where("e.college_id = ?", collegeID)
	}
	if eventType != "" {
		query = query.Where("e.event_type = ?", eventType)
	}

	var rows []eventPopularityRow
	err := query.Order("total_registrations DESC, e.id ASC").Limit(limit).Scan(&rows).Error
	return rows, err
}

// StudentParticipationRow 导出给嵌入用，匿名字段不可导出会被 gorm 扫描跳过
type StudentParticipationRow struct {
	StudentID            uint     `gorm:"column:student_id" json:"id" excel:"学生ID"`
	Name                 string   `gorm:"column:name" json:"name" excel:"姓名"`
	StudentNumber        string   `gorm:"column:student_number" json:"student_number" excel:"学号"`
	Email                string   `gorm:"column:email" json:"email" excel:"邮箱"`
	Year                 string   `gorm:"column:year" json:"year" excel:"年级"`
	Department           string   `gorm:"column:department" json:"department" excel:"专业"`
	CollegeName          string   `gorm:"column:college_name" json:"college_name" excel:"学院"`
	TotalRegistrations   int64    `gorm:"column:total_registrations" json:"total_registrations" excel:"报名数"`
	TotalAttendance      int64    `gorm:"column:total_attendance" json:"total_attendance" excel:"出席数"`
	TotalFeedback        int64    `gorm:"column:total_feedback" json:"total_feedback" excel:"反馈数"`
	AttendancePercentage *float64 `gorm:"column:attendance_percentage" json:"attendance_percentage" excel:"出席率"`
	AverageRatingGiven   *float64 `gorm:"column:average_rating_given" json:"average_rating_given" excel:"平均打分"`
}

const studentParticipationSelect = `
	s.id AS student_id,
	s.name,
	s.student_id AS student_number,
	s.email,
	s.year,
	s.department,
	c.name AS college_name,
	(SELECT COUNT(DISTINCT r.event_id) FROM registration r WHERE r.student_id = s.id AND r.status = 'registered') AS total_registrations,
	(SELECT COUNT(DISTINCT a.event_id) FROM attendance a WHERE a.student_id = s.id AND a.status = 'present') AS total_attendance,
	(SELECT COUNT(DISTINCT f.event_id) FROM feedback f WHERE f.student_id = s.id) AS total_feedback,
	ROUND((SELECT COUNT(DISTINCT a.event_id) FROM attendance a WHERE a.student_id = s.id AND a.status = 'present') * 100.0 /
		NULLIF((SELECT COUNT(DISTINCT r.event_id) FROM registration r WHERE r.student_id = s.id AND r.status = 'registered'), 0), 2) AS attendance_percentage,
	(SELECT ROUND(AVG(f.rating), 2) FROM feedback f WHERE f.student_id = s.id) AS average_rating_given`

func participationBase(collegeID, studentID string) *gorm.DB {
	query := database.DB.Table("student s").
		Select(studentParticipationSelect).
		Joins("JOIN college c ON c.id = s.college_id")
	if collegeID != "" {
		query = query.Where("s.college_id = ?", collegeID)
	}
	if studentID != "" {
		query = query.Where("s.id = ?", studentID)
	}
	return query
}

func selectStudentParticipation(collegeID, studentID string, offset, limit int) ([]StudentParticipationRow, int64, error) {
	countQuery := database.DB.Table("student s")
	if collegeID != "" {
		countQuery = countQuery.Where("s.college_id = ?", collegeID)
	}
	if studentID != "" {
		countQuery = countQuery.Where("s.id = ?", studentID)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []StudentParticipationRow
	err := participationBase(collegeID, studentID).
		Order("total_registrations DESC, total_attendance DESC, s.id ASC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}

type topActiveStudentRow struct {
	StudentParticipationRow
	ActivityScore int64 `gorm:"column:activity_score" json:"activity_score" excel:"活跃度"`
}

// selectTopActiveStudents 活跃度 = 报名、出席、反馈三项去重计数之和
// 子查询套一层派生表，外层才能引用计数别名，零报名的学生不进榜
func selectTopActiveStudents(collegeID string, limit int) ([]topActiveStudentRow, error) {
	sub := participationBase(collegeID, "")

	var rows []topActiveStudentRow
	err := database.DB.Table("(?) AS t", sub).
		Select("t.*, t.total_registrations + t.total_attendance + t.total_feedback AS activity_score").
		Where("t.total_registrations > 0").
		Order("activity_score DESC, t.total_attendance DESC, t.total_registrations DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

type eventTypeAnalysisRow struct {
	EventType            string   `gorm:"column:event_type" json:"event_type"`
	TotalEvents          int64    `gorm:"column:total_events" json:"total_events"`
	TotalParticipants    int64    `gorm:"column:total_participants" json:"total_participants"`
	TotalAttendees       int64    `gorm:"column:total_attendees" json:"total_attendees"`
	AttendancePercentage *float64 `gorm:"column:attendance_percentage" json:"attendance_percentage"`
	AverageRating        *float64 `gorm:"column:average_rating" json:"average_rating"`
	TotalFeedback        int64    `gorm:"column:total_feedback" json:"total_feedback"`
}

func selectEventTypeAnalysis(collegeID string) ([]eventTypeAnalysisRow, error) {
	query := database.DB.Table("event e").
		Select(`
			e.event_type,
			COUNT(DISTINCT e.id) AS total_events,
			COUNT(DISTINCT r.student_id) AS total_participants,
			COUNT(DISTINCT a.student_id) AS total_attendees,
			ROUND(COUNT(DISTINCT a.student_id) * 100.0 / NULLIF(COUNT(DISTINCT r.student_id), 0), 2) AS attendance_percentage,
			ROUND(AVG(f.rating), 2) AS average_rating,
			COUNT(DISTINCT f.id) AS total_feedback`).
		Joins("LEFT JOIN registration r ON r.event_id = e.id AND r.status = 'registered'").
		Joins("LEFT JOIN attendance a ON a.event_id = e.id AND a.status = 'present'").
		Joins("LEFT JOIN feedback f ON f.event_id = e.id")
	if collegeID != "" {
		query = query.Where("e.college_id = ?", collegeID)
	}

	var rows []eventTypeAnalysisRow
	err := query.Group("e.event_type").
		Order("total_events DESC, total_participants DESC").
		Scan(&rows).Error
	return rows, err
}

type attendanceSummaryRow struct {
	EventID              uint      `gorm:"column:event_id" json:"id"`
	Title                string    `gorm:"column:title" json:"title"`
	EventType            string    `gorm:"column:event_type" json:"event_type"`
	StartDate            time.Time `gorm:"column:start_date" json:"start_date"`
	Location             string    `gorm:"column:location" json:"location"`
	CollegeName          string    `gorm:"column:college_name" json:"college_name"`
	TotalRegistrations   int64     `gorm:"column:total_registrations" json:"total_registrations"`
	TotalAttendance      int64     `gorm:"column:total_attendance" json:"total_attendance"`
	AttendancePercentage *float64  `gorm:"column:attendance_percentage" json:"attendance_percentage"`
	PresentCount         int64     `gorm:"column:present_count" json:"present_count"`
	AbsentCount          int64     `gorm:"column:absent_count" json:"absent_count"`
}

func selectAttendanceSummary(eventID, collegeID string) ([]attendanceSummaryRow, error) {
	query := database.DB.Table("event e").
		Select(`
			e.id AS event_id,
			e.title,
			e.event_type,
			e.start_date,
			e.location,
			c.name AS college_name,
			(SELECT COUNT(*) FROM registration r WHERE r.event_id = e.id AND r.status = 'registered') AS total_registrations,
			(SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id) AS total_attendance,
			ROUND((SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id) * 100.0 /
				NULLIF((SELECT COUNT(*) FROM registration r WHERE r.event_id = e.id AND r.status = 'registered'), 0), 2) AS attendance_percentage,
			(SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id AND a.status = 'present') AS present_count,
			(SELECT COUNT(*) FROM attendance a WHERE a.event_id = e.id AND a.status = 'absent') AS absent_count`).
		Joins("JOIN college c ON c.id = e.college_id")
	if eventID != "" {
		query = query.Where("e.id = ?", eventID)
	}
	if collegeID != "" {
		query = query.Where("e.college_id = ?", collegeID)
	}

	var rows []attendanceSummaryRow
	err := query.Order("e.start_date DESC").Scan(&rows).Error
	return rows, err
}

type feedbackSummaryRow struct {
	EventID        uint      `gorm:"column:event_id" json:"id"`
	Title          string    `gorm:"column:title" json:"title"`
	EventType      string    `gorm:"column:event_type" json:"event_type"`
	StartDate      time.Time `gorm:"column:start_date" json:"start_date"`
	CollegeName    string    `gorm:"column:college_name" json:"college_name"`
	TotalFeedback  int64     `gorm:"column:total_feedback" json:"total_feedback"`
	AverageRating  *float64  `gorm:"column:average_rating" json:"average_rating"`
	MinRating      *int      `gorm:"column:min_rating" json:"min_rating"`
	MaxRating      *int      `gorm:"column:max_rating" json:"max_rating"`
	FiveStarCount  int64     `gorm:"column:five_star_count" json:"five_star_count"`
	FourStarCount  int64     `gorm:"column:four_star_count" json:"four_star_count"`
	ThreeStarCount int64     `gorm:"column:three_star_count" json:"three_star_count"`
	TwoStarCount   int64     `gorm:"column:two_star_count" json:"two_star_count"`
	OneStarCount   int64     `gorm:"column:one_star_count" json:"one_star_count"`
}

func selectFeedbackSummary(eventID, collegeID string) ([]feedbackSummaryRow, error) {
	query := database.DB.Table("event e").
		Select(`
			e.id AS event_id,
			e.title,
			e.event_type,
			e.start_date,
			c.name AS college_name,
			COUNT(f.id) AS total_feedback,
			ROUND(AVG(f.rating), 2) AS average_rating,
			MIN(f.rating) AS min_rating,
			MAX(f.rating) AS max_rating,
			COUNT(CASE WHEN f.rating = 5 THEN 1 END) AS five_star_count,
			COUNT(CASE WHEN f.rating = 4 THEN 1 END) AS four_star_count,
			COUNT(CASE WHEN f.rating = 3 THEN 1 END) AS three_star_count,
			COUNT(CASE WHEN f.rating = 2 THEN 1 END) AS two_star_count,
			COUNT(CASE WHEN f.rating = 1 THEN 1 END) AS one_star_count`).
		Joins("JOIN college c ON c.id = e.college_id").
		Joins("LEFT JOIN feedback f ON f.event_id = e.id")
	if eventID != "" {
		query = query.Where("e.id = ?", eventID)
	}
	if collegeID != "" {
		query = query.Where("e.college_id = ?", collegeID)
	}

	var rows []feedbackSummaryRow
	err := query.Group("e.id").
		Order("average_rating DESC, total_feedback DESC").
		Scan(&rows).Error
	return rows, err
}
