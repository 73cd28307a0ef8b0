// Package logging configures the suite logger: a colored console core plus
// two rotating files, one with everything and one with errors only.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the suite logger. The full log rotates at 10 MB and is kept
// for 10 days; the errors-only log rotates at 5 MB and is kept for 30 days.
// Rotated files are compressed.
func New(logDir, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, err
	}

	consoleLevel := parseLevel(level)

	consoleEnc := zapcore.NewConsoleEncoder(consoleEncoderConfig())
	fileEnc := zapcore.NewConsoleEncoder(fileEncoderConfig())

	fullFile := zapcore.AddSync(&lumberjack.Logger{
		Filename: filepath.Join(logDir, "twitchsmoke.log"),
		MaxSize:  10, // MB
		MaxAge:   10, // days
		Compress: true,
	})
	errFile := zapcore.AddSync(&lumberjack.Logger{
		Filename: filepath.Join(logDir, "errors.log"),
		MaxSize:  5,  // MB
		MaxAge:   30, // days
		Compress: true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), consoleLevel),
		zapcore.NewCore(fileEnc, fullFile, zapcore.DebugLevel),
		zapcore.NewCore(fileEnc, errFile, zapcore.ErrorLevel),
	)

	return zap.New(core, zap.AddCaller()), nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	return cfg
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	return cfg
}
