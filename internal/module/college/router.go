package college

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleCollege) InitRouter(r *gin.RouterGroup) {
	collegeGroup := r.Group("/colleges")
	{
		collegeGroup.GET("", ListColleges)
		collegeGroup.GET("/:id", GetCollege)
		collegeGroup.POST("", CreateCollege)
	}
}
