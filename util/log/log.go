package log

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = newConsoleLogger().Sugar()

func newConsoleLogger() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	return zap.New(core)
}

// InitFileLog switches logging to a file under dir named after module.
func InitFileLog(dir, module, level string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		sugar.Errorf("create log dir %s failed: %v", dir, err)
		return
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, module+".log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		sugar.Errorf("init file log failed: %v", err)
		return
	}
	sugar = logger.Sugar()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

func Debug(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	sugar.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	sugar.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	sugar.Errorf(format, args...)
}

func Fatal(format string, args ...interface{}) {
	sugar.Fatalf(format, args...)
}

func Panic(format string, args ...interface{}) {
	sugar.Panicf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() {
	sugar.Sync()
}
