package feedback

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleFeedback) InitRouter(r *gin.RouterGroup) {
	feedbackGroup := r.Group("/feedback")
	{
		feedbackGroup.GET("", ListFeedback)
		feedbackGroup.POST("", SubmitFeedback)
		feedbackGroup.PUT("/:id", UpdateFeedback)
		feedbackGroup.DELETE("/:id", DeleteFeedback)
	}
}
