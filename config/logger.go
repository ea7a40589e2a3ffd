package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var commitID string

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.999999Z07:00"),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// LogsBaseDir is where every log file of the service lives.
func LogsBaseDir() string {
	return Config("LOG_DIR", "../logs")
}

// weeklyLogName keeps one file per ISO week so old weeks can be archived.
func weeklyLogName(prefix, suffix string, now time.Time) string {
	year, month, _ := now.Date()
	_, week := now.ISOWeek()
	if suffix != "" {
		return fmt.Sprintf("%s-%d-%02d-week%d-%s.log", prefix, year, month, week, suffix)
	}
	return fmt.Sprintf("%s-%d-%02d-week%d.log", prefix, year, month, week)
}

// NewLogger builds the application logger writing JSON to stdout and to
// the weekly log file.
func NewLogger() *zap.Logger {
	logDir := LogsBaseDir()
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Printf("Failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	logPath := filepath.Join(logDir, weeklyLogName("payexsync", "", time.Now()))

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if ConfigBool("DEBUG", false) {
		level.SetLevel(zap.DebugLevel)
	}

	zapConfig := zap.Config{
		Level:       level,
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	}

	l, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	return l.With(zap.String("commit_id", commitID))
}
