package attendance

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleAttendance) InitRouter(r *gin.RouterGroup) {
	attendanceGroup := r.Group("/attendance")
	{
		attendanceGroup.GET("", ListAttendance)
		attendanceGroup.POST("", MarkAttendance)
		attendanceGroup.PUT("/:id", UpdateAttendance)
		attendanceGroup.DELETE("/:id", DeleteAttendance)
	}
}
