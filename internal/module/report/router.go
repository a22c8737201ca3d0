package report

import (
	"github.com/gin-gonic/gin"
)

func (m *ModuleReport) InitRouter(r *gin.RouterGroup) {
	reportGroup := r.Group("/reports")
	{
		reportGroup.GET("/event-popularity", EventPopularity)
		reportGroup.GET("/event-popularity/export", ExportEventPopularity)
		reportGroup.GET("/student-participation", StudentParticipation)
		reportGroup.GET("/student-participation/export", ExportStudentParticipation)
		reportGroup.GET("/top-active-students", TopActiveStudents)
		reportGroup.GET("/event-type-analysis", EventTypeAnalysis)
		reportGroup.GET("/attendance-summary", AttendanceSummary)
		reportGroup.GET("/feedback-summary", FeedbackSummary)
	}
}
