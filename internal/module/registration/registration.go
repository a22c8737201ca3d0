package registration

import (
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistrationCreateReq 定义报名请求的结构体
type RegistrationCreateReq struct {
	EventID   uint `json:"event_id" binding:"required"`
	StudentID uint `json:"student_id" binding:"required"`
}

// CreateRegistration 报名准入：活动存在且 active、未开始、学生存在、未重复报名、未满员。
// 全部检查和插入在同一事务内完成，MySQL 下对活动行加排他锁，
// 避免两个并发请求同时通过容量检查后双双插入超员
func CreateRegistration(c *gin.Context) {
	var req RegistrationCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定报名请求失败", "error", err)
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	var reg model.Registration
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		eventQuery := tx
		if tx.Dialector.Name() == "mysql" {
			eventQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var event model.Event
		if err := eventQuery.First(&event, "id = ?", req.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrEventNotFound
			}
			return response.ErrDatabase.WithOrigin(err)
		}

		if event.Status != model.EventStatusActive {
			return response.ErrEventNotActive
		}

		// 边界：start_date <= now 即关闭报名
		if !time.Now().Before(event.StartDate) {
			return response.ErrRegistrationClosed
		}

		var count int64
		if err := tx.Model(&model.Student{}).Where("id = ?", req.StudentID).Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count == 0 {
			return response.ErrStudentNotFound
		}

		if err := tx.Model(&model.Registration{}).
			Where("event_id = ? AND student_id = ?", req.EventID, req.StudentID).
			Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return response.ErrAlreadyRegistered
		}

		if event.MaxParticipants != nil {
			if err := tx.Model(&model.Registration{}).
				Where("event_id = ? AND status = ?", req.EventID, model.RegistrationStatusRegistered).
				Count(&count).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
			if count >= int64(*event.MaxParticipants) {
				return response.ErrEventFull
			}
		}

		reg = model.Registration{
			EventID:   req.EventID,
			StudentID: req.StudentID,
			Status:    model.RegistrationStatusRegistered,
		}
		if err := tx.Create(&reg).Error; err != nil {
			// 唯一索引是并发下防重复的最终保障
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrAlreadyRegistered
			}
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})

	if err != nil {
		response.Fail(c, response.Coerce(err))
		return
	}

	log.Info("报名成功", "id", reg.ID, "event_id", req.EventID, "student_id", req.StudentID)
	response.Created(c, gin.H{"id": reg.ID}, "Student registered successfully")
}

// ListRegistrationsReq 定义报名列表查询参数
type ListRegistrationsReq struct {
	EventID   string `form:"event_id"`
	StudentID string `form:"student_id"`
	Status    string `form:"status"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type registrationRow struct {
	model.Registration
	EventTitle    string          `json:"event_title"`
	EventType     model.EventType `json:"event_type"`
	StartDate     time.Time       `json:"start_date"`
	Location      string          `json:"location"`
	StudentName   string          `json:"student_name"`
	StudentNumber string          `json:"student_number"`
	StudentEmail  string          `json:"student_email"`
	CollegeName   string          `json:"college_name"`
}

// ListRegistrations 获取报名列表（带活动和学生信息）
func ListRegistrations(c *gin.Context) {
	var req ListRegistrationsReq
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

	query := database.DB.Table("registration r").
		Select(`r.*, e.title AS event_title, e.event_type, e.start_date, e.location,
			s.name AS student_name, s.student_id AS student_number, s.email AS student_email,
			c.name AS college_name`).
		Joins("JOIN event e ON e.id = r.event_id").
		Joins("JOIN student s ON s.id = r.student_id").
		Joins("JOIN college c ON c.id = s.college_id")

	if req.EventID != "" {
		query = query.Where("r.event_id = ?", req.EventID)
	}
	if req.StudentID != "" {
		query = query.Where("r.student_id = ?", req.StudentID)
	}
	if req.Status != "" {
		query = query.Where("r.status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取报名总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var rows []registrationRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("r.registered_at DESC").Offset(offset).Limit(req.Limit).Scan(&rows).Error; err != nil {
		log.Error("获取报名列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Page(c, rows, response.NewPagination(req.Page, req.Limit, total))
}

// RegistrationUpdateReq 定义更新报名状态的请求体
type RegistrationUpdateReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateRegistration 更新报名状态
func UpdateRegistration(c *gin.Context) {
	id := c.Param("id")

	var req RegistrationUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	if !model.RegistrationStatus(req.Status).Valid() {
		response.Fail(c, response.ErrInvalidStatus)
		return
	}

	var reg model.Registration
	if err := database.DB.First(&reg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrRegistrationNotFound)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	reg.Status = model.RegistrationStatus(req.Status)
	if err := database.DB.Save(&reg).Error; err != nil {
		log.Error("更新报名失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, nil, "Registration updated successfully")
}

// DeleteRegistration 取消报名（物理删除，不保留历史）
func DeleteRegistration(c *gin.Context) {
	id := c.Param("id")

	r := database.DB.Delete(&model.Registration{}, "id = ?", id)
	if r.Error != nil {
		log.Error("取消报名失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrRegistrationNotFound)
		return
	}

	response.Success(c, nil, "Registration cancelled successfully")
}
