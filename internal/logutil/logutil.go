// Package logutil builds the application logger. The terminal belongs to
// the UI, so logs only ever go to a rotating file.
package logutil

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures the file sink.
type LogConfig struct {
	Level      string
	Filename   string
	MaxSize    int
	MaxDays    int
	MaxBackups int
}

func (cfg *LogConfig) getLevel() (zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return level, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

func (cfg *LogConfig) getSyncer() zapcore.WriteSyncer {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 64
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    maxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	})
}

func getEncoder() zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encCfg)
}

// Setup returns a logger writing JSON lines to cfg.Filename, or a no-op
// logger when no file is configured.
func Setup(cfg LogConfig) (*zap.Logger, error) {
	level, err := cfg.getLevel()
	if err != nil {
		return nil, err
	}
	if cfg.Filename == "" {
		return zap.NewNop(), nil
	}
	core := zapcore.NewCore(getEncoder(), cfg.getSyncer(), level)
	return zap.New(core, zap.AddCaller()), nil
}
