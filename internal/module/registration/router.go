package registration

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleRegistration) InitRouter(r *gin.RouterGroup) {
	registrationGroup := r.Group("/registrations")
	{
		registrationGroup.GET("", ListRegistrations)
		registrationGroup.POST("", CreateRegistration)
		registrationGroup.PUT("/:id", UpdateRegistration)
		// 取消报名是物理删除，释放容量并允许重新报名
		registrationGroup.DELETE("/:id", DeleteRegistration)
	}
}
