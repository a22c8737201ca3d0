package student

import (
	"campus-event-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleStudent struct{}

func (m *ModuleStudent) GetName() string {
	return "Student"
}

func (m *ModuleStudent) Init() {
	log = logger.New("Student")
}
