package utils

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log структурированный логгер
	Log = zap.NewNop()
	// SLog sugared-обертка над Log
	SLog = Log.Sugar()

	// helperLog пропускает кадр хелпера LogInfo/LogError, чтобы caller указывал на вызывающий код
	helperLog = Log.WithOptions(zap.AddCallerSkip(1))
)

// InitLogger настраивает глобальные логгеры
func InitLogger(level string, development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("неверный уровень логирования %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("не удалось создать логгер: %w", err)
	}
	SetLogger(logger)
	return nil
}

// SetLogger подменяет глобальный логгер (используется в тестах)
func SetLogger(logger *zap.Logger) {
	Log = logger
	SLog = logger.Sugar()
	helperLog = logger.WithOptions(zap.AddCallerSkip(1))
}

// SyncLogger сбрасывает буферы логгера
func SyncLogger() {
	_ = Log.Sync()
}

// LogInfo логирует информационное сообщение
func LogInfo(format string, v ...interface{}) {
	helperLog.Sugar().Infof(format, v...)
}

// LogError логирует сообщение об ошибке
func LogError(format string, v ...interface{}) {
	helperLog.Sugar().Errorf(format, v...)
}

// LogDebug логирует отладочное сообщение
func LogDebug(format string, v ...interface{}) {
	helperLog.Sugar().Debugf(format, v...)
}

// LogOperation логирует операцию с длительностью
func LogOperation(operation string, startTime time.Time, err error) {
	duration := time.Since(startTime)
	if err != nil {
		helperLog.Error("operation failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	helperLog.Info("operation completed",
		zap.String("operation", operation),
		zap.Duration("duration", duration),
	)
}
