package attendance

import (
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AttendanceCreateReq 定义签到请求的结构体，status 缺省为 present
type AttendanceCreateReq struct {
	EventID   uint   `json:"event_id" binding:"required"`
	StudentID uint   `json:"student_id" binding:"required"`
	Status    string `json:"status"`
}

// MarkAttendance 记录签到：要求存在 registered 状态的报名，且该学生未签到过。
// 检查和插入在同一事务内，唯一索引兜底并发下的重复插入
func MarkAttendance(c *gin.Context) {
	var req AttendanceCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定签到请求失败", "error", err)
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	if req.Status == "" {
		req.Status = string(model.AttendanceStatusPresent)
	}
	if !model.AttendanceStatus(req.Status).Valid() {
		response.Fail(c, response.ErrInvalidStatus)
		return
	}

	var att model.Attendance
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Registration{}).
			Where("event_id = ? AND student_id = ? AND status = ?",
				req.EventID, req.StudentID, model.RegistrationStatusRegistered).
			Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count == 0 {
			return response.ErrStudentNotRegistered
		}

		if err := tx.Model(&model.Attendance{}).
			Where("event_id = ? AND student_id = ?", req.EventID, req.StudentID).
			Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return response.ErrAttendanceAlreadyMarked
		}

		att = model.Attendance{
			EventID:   req.EventID,
			StudentID: req.StudentID,
			Status:    model.AttendanceStatus(req.Status),
		}
		if err := tx.Create(&att).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrAttendanceAlreadyMarked
			}
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})

	if err != nil {
		response.Fail(c, response.Coerce(err))
		return
	}

	log.Info("签到成功", "id", att.ID, "event_id", req.EventID, "student_id", req.StudentID, "status", att.Status)
	response.Created(c, gin.H{"id": att.ID}, "Attendance marked successfully")
}

// ListAttendanceReq 定义签到列表查询参数，date 按签到日期过滤（YYYY-MM-DD）
type ListAttendanceReq struct {
	EventID   string `form:"event_id"`
	StudentID string `form:"student_id"`
	Date      string `form:"date"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type attendanceRow struct {
	model.Attendance
	EventTitle    string          `json:"event_title"`
	EventType     model.EventType `json:"event_type"`
	StudentName   string          `json:"student_name"`
	StudentNumber string          `json:"student_number"`
	CollegeName   string          `json:"college_name"`
}

// ListAttendance 获取签到列表（带活动和学生信息）
func ListAttendance(c *gin.Context) {
	var req ListAttendanceReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	query := database.DB.Table("attendance a").
		Select(`a.*, e.title AS event_title, e.event_type,
			s.name AS student_name, s.student_id AS student_number,
			c.name AS college_name`).
		Joins("JOIN event e ON e.id = a.event_id").
		Joins("JOIN student s ON s.id = a.student_id").
		Joins("JOIN college c ON c.id = s.college_id")

	if req.EventID != "" {
		query = query.Where("a.event_id = ?", req.EventID)
	}
	if req.StudentID != "" {
		query = query.Where("a.student_id = ?", req.StudentID)
	}
	if req.Date != "" {
		query = query.Where("DATE(a.checked_in_at) = ?", req.Date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取签到总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var rows []attendanceRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("a.checked_in_at DESC").Offset(offset).Limit(req.Limit).Scan(&rows).Error; err != nil {
		log.Error("获取签到列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Page(c, rows, response.NewPagination(req.Page, req.Limit, total))
}

// AttendanceUpdateReq 定义更新签到状态的请求体
type AttendanceUpdateReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAttendance 按 id 覆盖签到状态。
// 与创建不同，这里不再校验报名是否仍然存在，沿用既有产品行为
func UpdateAttendance(c *gin.Context) {
	id := c.Param("id")

	var req AttendanceUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	if !model.AttendanceStatus(req.Status).Valid() {
		response.Fail(c, response.ErrInvalidStatus)
		return
	}

	var att model.Attendance
	if err := database.DB.First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrAttendanceNotFound)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	att.Status = model.AttendanceStatus(req.Status)
	if err := database.DB.Save(&att).Error; err != nil {
		log.Error("更新签到失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, nil, "Attendance updated successfully")
}

// DeleteAttendance 删除签到记录
func DeleteAttendance(c *gin.Context) {
	id := c.Param("id")

	r := database.DB.Delete(&model.Attendance{}, "id = ?", id)
	if r.Error != nil {
		log.Error("删除签到失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrAttendanceNotFound)
		return
	}

	response.Success(c, nil, "Attendance record deleted successfully")
}
