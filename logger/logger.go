// Package logger builds the zap logger used by the confsh command.
package logger

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level and destination.
type Config struct {
	Level string
	// FileName routes logs to a rotating file instead of the console writer.
	FileName   string
	MaxSize    int // megabytes
	MaxAge     int // days
	MaxBackups int
	Compress   bool
}

// DefaultConfig logs errors only, to the console.
func DefaultConfig() *Config {
	return &Config{
		Level:      "error",
		MaxSize:    10,
		MaxAge:     30,
		MaxBackups: 3,
	}
}

// New builds a logger from cfg. Console output goes to w. The returned
// close function flushes the logger and releases the log file, if any.
func New(cfg *Config, w io.Writer) (*zap.Logger, func() error, error) {
	level := new(zapcore.Level)
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var (
		sink    zapcore.WriteSyncer
		encoder zapcore.Encoder
		closeFn = func() error { return nil }
	)
	if cfg.FileName != "" {
		lj := getLogWriter(cfg)
		sink = zapcore.AddSync(lj)
		encoder = zapcore.NewJSONEncoder(encoderConfig())
		closeFn = lj.Close
	} else {
		sink = zapcore.AddSync(w)
		encoder = zapcore.NewConsoleEncoder(encoderConfig())
	}

	l := zap.New(zapcore.NewCore(encoder, sink, level))
	return l, func() error {
		_ = l.Sync()
		return closeFn()
	}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.SecondsDurationEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return ec
}

func getLogWriter(cfg *Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.FileName,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
}
