package logger

import (
	"go.uber.org/zap"
)

var _logger = zap.NewNop()

// Init installs a production logger writing at level and above. An empty
// level means info.
func Init(level string) error {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return err
		}
		cfg.Level = lvl
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	_logger = l
	return nil
}

func Sync() {
	if _logger != nil {
		_ = _logger.Sync()
	}
}

func Error(message string, field ...zap.Field) {
	_logger.Error(message, field...)
}

func Warn(message string, field ...zap.Field) {
	_logger.Warn(message, field...)
}

func Info(message string, field ...zap.Field) {
	_logger.Info(message, field...)
}

func Debug(message string, field ...zap.Field) {
	_logger.Debug(message, field...)
}
