package event

import (
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// 接受 ISO 8601 及常见的无时区变体
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventCreateReq 定义创建活动请求的结构体，日期为 ISO 8601 字符串
type EventCreateReq struct {
	CollegeID       uint   `json:"college_id" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	EventType       string `json:"event_type" binding:"required"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	Location        string `json:"location"`
	MaxParticipants *int   `json:"max_participants"`
	CreatedBy       string `json:"created_by"`
}

// CreateEvent 创建活动
func CreateEvent(c *gin.Context) {
	var req EventCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	if !model.EventType(req.EventType).Valid() {
		response.Fail(c, response.ErrInvalidEventType)
		return
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		response.Fail(c, response.ErrInvalidDateFormat)
		return
	}
	endDate, ok := parseDate(req.EndDate)
	if !ok {
		response.Fail(c, response.ErrInvalidDateFormat)
		return
	}
	if !endDate.After(startDate) {
		response.Fail(c, response.ErrInvalidDateRange)
		return
	}

	var count int64
	if err := database.DB.Model(&model.College{}).Where("id = ?", req.CollegeID).Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count == 0 {
		response.Fail(c, response.ErrConstraint.WithTips("college not found"))
		return
	}

	event := model.Event{
		CollegeID:       req.CollegeID,
		Title:           req.Title,
		Description:     req.Description,
		EventType:       model.EventType(req.EventType),
		StartDate:       startDate,
		EndDate:         endDate,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		Status:          model.EventStatusActive,
		CreatedBy:       req.CreatedBy,
	}

	if err := database.DB.Create(&event).Error; err != nil {
		log.Error("创建活动失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动创建成功", "id", event.ID, "title", event.Title)
	response.Created(c, gin.H{"id": event.ID}, "Event created successfully")
}

// ListEventsReq 定义活动列表查询参数
type ListEventsReq struct {
	CollegeID string `form:"college_id"`
	EventType string `form:"event_type"`
	Status    string `form:"status"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type eventRow struct {
	model.Event
	CollegeName string `json:"college_name"`
	CollegeCode string `json:"college_code"`
}

// ListEvents 获取活动列表（支持筛选和分页）
func ListEvents(c *gin.Context) {
	var req ListEventsReq
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

	query := database.DB.Table("event e").
		Select("e.*, c.name AS college_name, c.code AS college_code").
		Joins("JOIN college c ON c.id = e.college_id")

	if req.CollegeID != "" {
		query = query.Where("e.college_id = ?", req.CollegeID)
	}
	if req.EventType != "" {
		query = query.Where("e.event_type = ?", req.EventType)
	}
	if req.Status != "" {
		query = query.Where("e.status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取活动总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var rows []eventRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("e.start_date DESC").Offset(offset).Limit(req.Limit).Scan(&rows).Error; err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Page(c, rows, response.NewPagination(req.Page, req.Limit, total))
}

// GetEvent 获取单个活动（带学院信息）
func GetEvent(c *gin.Context) {
	id := c.Param("id")

	var row eventRow
	r := database.DB.Table("event e").
		Select("e.*, c.name AS college_name, c.code AS college_code").
		Joins("JOIN college c ON c.id = e.college_id").
		Where("e.id = ?", id).
		Limit(1).Scan(&row)
	if r.Error != nil {
		log.Error("查询活动失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrEventNotFound)
		return
	}

	response.Success(c, row)
}

// EventUpdateReq 定义更新活动请求的结构体，使用指针类型支持部分更新
type EventUpdateReq struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	EventType       *string `json:"event_type"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Location        *string `json:"location"`
	MaxParticipants *int    `json:"max_participants"`
	Status          *string `json:"status"`
}

func (req *EventUpdateReq) empty() bool {
	return req.Title == nil && req.Description == nil && req.EventType == nil &&
		req.StartDate == nil && req.EndDate == nil && req.Location == nil &&
		req.MaxParticipants == nil && req.Status == nil
}

// UpdateEvent 部分更新活动，合并后重新校验类型、状态和日期区间
func UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var req EventUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.empty() {
		response.Fail(c, response.ErrNoFieldsToUpdate)
		return
	}

	if req.EventType != nil && !model.EventType(*req.EventType).Valid() {
		response.Fail(c, response.ErrInvalidEventType)
		return
	}
	if req.Status != nil && !model.EventStatus(*req.Status).Valid() {
		response.Fail(c, response.ErrInvalidStatus)
		return
	}

	var event model.Event
	if err := database.DB.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrEventNotFound)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventType != nil {
		event.EventType = model.EventType(*req.EventType)
	}
	if req.StartDate != nil {
		startDate, ok := parseDate(*req.StartDate)
		if !ok {
			response.Fail(c, response.ErrInvalidDateFormat)
			return
		}
		event.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, ok := parseDate(*req.EndDate)
		if !ok {
			response.Fail(c, response.ErrInvalidDateFormat)
			return
		}
		event.EndDate = endDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = req.MaxParticipants
	}
	if req.Status != nil {
		event.Status = model.EventStatus(*req.Status)
	}

	// 日期区间按合并后的值校验
	if !event.EndDate.After(event.StartDate) {
		response.Fail(c, response.ErrInvalidDateRange)
		return
	}

	if err := database.DB.Save(&event).Error; err != nil {
		log.Error("更新活动失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, nil, "Event updated successfully")
}

// DeleteEvent 删除活动
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	r := database.DB.Delete(&model.Event{}, "id = ?", id)
	if r.Error != nil {
		log.Error("删除活动失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrEventNotFound)
		return
	}

	response.Success(c, nil, "Event deleted successfully")
}
