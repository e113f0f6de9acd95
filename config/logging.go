package config

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

// InitLogging builds the application logger. Logs go to stdout and to a
// rotating file at s.LogFile. Production uses JSON on the console, development
// a human-readable encoder.
func InitLogging(s Settings) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(s.LogFile), os.ModePerm); err != nil {
		// fall back to console only
		return zap.New(zapcore.NewCore(consoleEncoder(s), zapcore.AddSync(os.Stdout), zap.DebugLevel), zap.AddCaller())
	}

	fileWriter := &lumberjack.Logger{
		Filename:   s.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	}
	LogWriter = io.MultiWriter(os.Stdout, fileWriter)

	level := zap.DebugLevel
	if s.IsProduction() {
		level = zap.InfoLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(s), zapcore.AddSync(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(fileWriter), level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

func consoleEncoder(s Settings) zapcore.Encoder {
	if s.IsProduction() {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
