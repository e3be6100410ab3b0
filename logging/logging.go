package logging

import "go.uber.org/zap"

// New creates a named zap logger for a pipeline component
func New(name string) *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar().Named(name)
}
