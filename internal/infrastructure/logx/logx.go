package logx

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
)

func init() {
	logger = build(os.Getenv("LOG_LEVEL"))
}

func build(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(level)))
	}

	l, err := zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	return l
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// Configure rebuilds the package logger once configuration (including .env)
// has been loaded. Not safe to call concurrently with L.
func Configure(level string) *zap.Logger {
	logger = build(level)
	return logger
}
