package event

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleEvent) InitRouter(r *gin.RouterGroup) {
	eventGroup := r.Group("/events")
	{
		eventGroup.GET("", ListEvents)
		eventGroup.GET("/:id", GetEvent)
		eventGroup.POST("", CreateEvent)
		eventGroup.PUT("/:id", UpdateEvent)
		eventGroup.DELETE("/:id", DeleteEvent)
	}
}
