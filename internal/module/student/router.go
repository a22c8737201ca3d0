package student

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleStudent) InitRouter(r *gin.RouterGroup) {
	studentGroup := r.Group("/students")
	{
		studentGroup.GET("", ListStudents)
		studentGroup.GET("/:id", GetStudent)
		studentGroup.POST("", CreateStudent)
		studentGroup.PUT("/:id", UpdateStudent)
		studentGroup.DELETE("/:id", DeleteStudent)
	}
}
