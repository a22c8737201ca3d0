package student

import (
	"campus-event-system/internal/global/database"
	"campus-event-system/internal/global/response"
	"campus-event-system/internal/model"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// StudentCreateReq 定义创建学生请求的结构体
type StudentCreateReq struct {
	CollegeID  uint   `json:"college_id" binding:"required"`
	StudentID  string `json:"student_id" binding:"required"` // 学号
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Year       string `json:"year"`
	Department string `json:"department"`
}

// CreateStudent 创建学生
func CreateStudent(c *gin.Context) {
	var req StudentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建学生请求失败", "error", err)
		response.Fail(c, response.ErrMissingFields.WithOrigin(err))
		return
	}

	if !emailRegex.MatchString(req.Email) {
		response.Fail(c, response.ErrInvalidEmail)
		return
	}

	// 外键有效性先查一次，给出比约束错误更明确的响应
	var count int64
	if err := database.DB.Model(&model.College{}).Where("id = ?", req.CollegeID).Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if count == 0 {
		response.Fail(c, response.ErrConstraint.WithTips("college not found"))
		return
	}

	student := model.Student{
		CollegeID:  req.CollegeID,
		StudentID:  req.StudentID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Year:       req.Year,
		Department: req.Department,
	}

	if err := database.DB.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrDuplicateStudentID)
			return
		}
		log.Error("创建学生失败", "error", err, "student_id", req.StudentID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("学生创建成功", "id", student.ID, "student_id", student.StudentID)
	response.Created(c, gin.H{"id": student.ID}, "Student registered successfully")
}

// ListStudentsReq 定义学生列表查询参数
type ListStudentsReq struct {
	CollegeID  string `form:"college_id"`
	Year       string `form:"year"`
	Department string `form:"department"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type studentRow struct {
	model.Student
	CollegeName string `json:"college_name"`
	CollegeCode string `json:"college_code"`
}

// ListStudents 获取学生列表（支持筛选和分页）
func ListStudents(c *gin.Context) {
	var req ListStudentsReq
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

	query := database.DB.Table("student s").
		Select("s.*, c.name AS college_name, c.code AS college_code").
		Joins("JOIN college c ON c.id = s.college_id")

	if req.CollegeID != "" {
		query = query.Where("s.college_id = ?", req.CollegeID)
	}
	if req.Year != "" {
		query = query.Where("s.year = ?", req.Year)
	}
	if req.Department != "" {
		query = query.Where("s.department = ?", req.Department)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取学生总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var rows []studentRow
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("s.name ASC").Offset(offset).Limit(req.Limit).Scan(&rows).Error; err != nil {
		log.Error("获取学生列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Page(c, rows, response.NewPagination(req.Page, req.Limit, total))
}

// GetStudent 获取单个学生（带学院信息）
func GetStudent(c *gin.Context) {
	id := c.Param("id")

	var row studentRow
	r := database.DB.Table("student s").
		Select("s.*, c.name AS college_name, c.code AS college_code").
		Joins("JOIN college c ON c.id = s.college_id").
		Where("s.id = ?", id).
		Limit(1).Scan(&row)
	if r.Error != nil {
		log.Error("查询学生失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrStudentNotFound)
		return
	}

	response.Success(c, row)
}

// StudentUpdateReq 定义更新学生请求的结构体，使用指针类型支持部分更新
type StudentUpdateReq struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Year       *string `json:"year"`
	Department *string `json:"department"`
}

// UpdateStudent 部分更新学生信息，只校验并应用请求中出现的字段
func UpdateStudent(c *gin.Context) {
	id := c.Param("id")

	var req StudentUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Name == nil && req.Email == nil && req.Phone == nil && req.Year == nil && req.Department == nil {
		response.Fail(c, response.ErrNoFieldsToUpdate)
		return
	}

	if req.Email != nil && !emailRegex.MatchString(*req.Email) {
		response.Fail(c, response.ErrInvalidEmail)
		return
	}

	var student model.Student
	if err := database.DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrStudentNotFound)
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Year != nil {
		student.Year = *req.Year
	}
	if req.Department != nil {
		student.Department = *req.Department
	}

	if err := database.DB.Save(&student).Error; err != nil {
		log.Error("更新学生失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, nil, "Student updated successfully")
}

// DeleteStudent 删除学生
func DeleteStudent(c *gin.Context) {
	id := c.Param("id")

	r := database.DB.Delete(&model.Student{}, "id = ?", id)
	if r.Error != nil {
		log.Error("删除学生失败", "error", r.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(r.Error))
		return
	}
	if r.RowsAffected == 0 {
		response.Fail(c, response.ErrStudentNotFound)
		return
	}

	response.Success(c, nil, "Student deleted successfully")
}
