package bootstrap

import (
	"log/slog"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

// NewLogger returns the process logger for the configured environment and
// makes it the slog default. Records logged with a context from
// logger.WithCorrelationID carry that id.
func NewLogger(cfg AppConfig, component string) *slog.Logger {
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithAttr(logger.Component(component)),
		logger.WithContextExtractors(logger.CorrelationID),
	)
	logger.SetAsDefault(log)
	return log
}
