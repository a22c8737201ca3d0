package feedback

import (
	"campus-event-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleFeedback struct{}

func (m *ModuleFeedback) GetName() string {
	return "Feedback"
}

func (m *ModuleFeedback) Init() {
	log = logger.New("Feedback")
}
