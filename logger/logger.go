package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}

// Quiet raises the level shared by every logger built with NewLogger to warn.
// Used in test mode, so command output isn't drowned in debug logs.
func Quiet() {
	level.SetLevel(zapcore.WarnLevel)
}
