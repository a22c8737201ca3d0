package college

import (
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CollegeCreateReq 定义创建学院请求的结构体
type CollegeCreateReq struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateCollege 创建学院
func CreateCollege(c *gin.Context) {
	var req CollegeCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建学院请求失败", "error", err)
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	college := model.College{Name: req.Name, Code: req.Code}
	if err := database.DB.Create(&college).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrDuplicateCollege)
			return
		}
		log.Error("创建学院失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("学院创建成功", "id", college.ID, "name", college.Name)
	response.Created(c, gin.H{"id": college.ID}, "College created successfully")
}

// ListCollegesReq 定义学院列表查询参数
type ListCollegesReq struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ListColleges 获取学院列表
func ListColleges(c *gin.Context) {
	var req ListCollegesReq
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

	query := database.DB.Model(&model.College{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取学院总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var colleges []model.College
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name ASC").Offset(offset).Limit(req.Limit).Find(&colleges).Error; err != nil {
		log.Error("获取学院列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Page(c, colleges, response.NewPagination(req.Page, req.Limit, total))
}

// GetCollege 获取单个学院
func GetCollege(c *gin.Context) {
	id := c.Param("id")

	var college model.College
	if err := database.DB.First(&college, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrCollegeNotFound)
			return
		}
		log.Error("查询学院失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, college)
}
