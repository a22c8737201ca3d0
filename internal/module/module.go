package module

import (
	"campus-event-system/internal/module/attendance"
	"campus-event-system/internal/module/college"
	"campus-event-system/internal/module/event"
	"campus-event-system/internal/module/feedback"
	"campus-event-system/internal/module/ping"
	"campus-event-system/internal/module/registration"
	"campus-event-system/internal/module/report"
	"campus-event-system/internal/module/student"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&college.ModuleCollege{},
		&student.ModuleStudent{},
		&event.ModuleEvent{},
		&registration.ModuleRegistration{},
		&attendance.ModuleAttendance{},
		&feedback.ModuleFeedback{},
		&report.ModuleReport{},
	})
}
