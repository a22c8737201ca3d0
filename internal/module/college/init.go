package college

import (
	"campus-event-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleCollege struct{}

func (m *ModuleCollege) GetName() string {
	return "College"
}

func (m *ModuleCollege) Init() {
	log = logger.New("College")
}
