package attendance

import (
	"campus-event-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleAttendance struct{}

func (m *ModuleAttendance) GetName() string {
	return "Attendance"
}

func (m *ModuleAttendance) Init() {
	log = logger.New("Attendance")
}
