package feedback

import (
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FeedbackCreateReq 定义提交反馈请求的结构体
// rating 用指针区分"未传"和 0，范围校验单独给出 INVALID_RATING
type FeedbackCreateReq struct {
	EventID   uint   `json:"event_id" binding:"required"`
	StudentID uint   `json:"student_id" binding:"required"`
	Rating    *int   `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// SubmitFeedback 提交反馈：要求存在 present 状态的签到（absent 不算出席），
// 且该学生未提交过反馈。检查和插入在同一事务内，唯一索引兜底
func SubmitFeedback(c *gin.Context) {
	var req FeedbackCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定反馈请求失败", "error", err)
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	if !model.ValidRating(*req.Rating) {
		response.Fail(c, response.ErrInvalidRating)
		return
	}

	var fb model.Feedback
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Attendance{}).
			Where("event_id = ? AND student_id = ? AND status = ?",
				req.EventID, req.StudentID, model.AttendanceStatusPresent).
			Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count == 0 {
			return response.ErrStudentNotAttended
		}

		if err := tx.Model(&model.Feedback{}).
			Where("event_id = ? AND student_id = ?", req.EventID, req.StudentID).
			Count(&count).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if count > 0 {
			return response.ErrFeedbackAlreadySubmitted
		}

		fb = model.Feedback{
			EventID:   req.EventID,
			StudentID: req.StudentID,
			Rating:    *req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(&fb).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrFeedbackAlreadySubmitted
			}
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})

	if err != nil {
		response.Fail(c, response.Coerce(err))
		return
	}

	log.Info("反馈提交成功", "id", fb.ID, "event_id", req.EventID, "student_id", req.StudentID, "rating", fb.Rating)
	response.Created(c, gin.H{"id": fb.ID}, "Feedback submitted successfully")
}

// ListFeedbackReq 定义反馈列表查询参数
type ListFeedbackReq struct {
	EventID   string `form:"event_id"`
	StudentID string `form:"student_id"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type feedbackRow struct {
	model.Feedback
	EventTitle    string          `json:"event_title"`
	EventType     model.EventType `json:"event_type"`
	StudentName   string          `json:"student_name"`
	StudentNumber string          `json:"student_number"`
	CollegeName   string          `json:"college_name"`
}

// ListFeedback 获取反馈列表（带活动和学生信息）
func ListFeedback(c *gin.Context) {
	var req ListFeedbackReq
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

	query := database.DB.Table("feedback f").
		Select(`f.*, e.title AS event_title, e.event_type,
			s.name AS student_name, s.student_id AS student_number,
			c.name AS college_name`).
		Joins("JOIN event e ON e.id = f.event_id").
		Joins("JOIN student s ON s.id = f.student_id").
		Joins("JOIN college c ON c.id = s.college_id")

	if req.EventID != "" {
		query = query.Where("f.event_id = ?", req.EventID)
	}
	if req.StudentID != "" {
		query = query.Where("f.student_id = ?", req.StudentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取反馈总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var rows []feedbackRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("f.submitted_at DESC").Offset(offset).Limit(req.Limit).Scan(&rows).Error; err != nil {
		log.Error("获取反馈列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Page(c, rows, response.NewPagination(req.Page, req.Limit, total))
}

// FeedbackUpdateReq 定义更新反馈请求的结构体，使用指针类型支持部分更新
type FeedbackUpdateReq struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// UpdateFeedback 部分更新反馈，rating 出现时重新校验范围
func UpdateFeedback(c *gin.Context) {
	id := c.Param("id")

	var req FeedbackUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Rating == nil && req.Comment == nil {
		response.Fail(c, response.ErrNoFieldsToUpdate)
		return
	}
	if req.Rating != nil && !model.ValidRating(*req.Rating) {
		response.Fail(c, response.ErrInvalidRating)
		return
	}

	var fb model.Feedback
	if err := database.DB.First(&fb, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrFeedbackNotFound)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Rating != nil {
		fb.Rating = *req.Rating
	}
	if req.Comment != nil {
		fb.Comment = *req.Comment
	}

	if err := database.DB.Save(&fb).Error; err != nil {
		log.Error("更新反馈失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, nil, "Feedback updated successfully")
}

// DeleteFeedback 删除反馈记录
func DeleteFeedback(c *gin.Context) {
	id := c.Param("id")

	r := database.DB.Delete(&model.Feedback{}, "id = ?", id)
	if r.Error != nil {
		log.Error("删除反馈失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrFeedbackNotFound)
		return
	}

	response.Success(c, nil, "Feedback record deleted successfully")
}
