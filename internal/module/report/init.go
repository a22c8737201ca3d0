package report

import (
	"campus-event-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleReport struct{}

func (m *ModuleReport) GetName() string {
	return "Report"
}

func (m *ModuleReport) Init() {
	log = logger.New("Report")
}
