package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var err error

type Logger struct {
	*zap.Logger
}

func (l *Logger) init() error {
	if _, debug := os.LookupEnv("POWER_DEBUG"); debug {
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l.Logger, err = zapConfig.Build()
	} else {
		l.Logger, err = zap.NewProduction()
	}

	return err
}

// New takes in a package to initialize the new Logger in.
func New(pkg string) *Logger {
	Log := &Logger{}
	err = Log.init()
	if err != nil {
		panic(err)
	}

	Log.Logger = Log.Logger.With(
		zap.String("package", pkg),
	)

	return Log
}
