package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lixenwraith/prize-wheel/config"
)

const timeFmt = "2006/01/02 15:04:05.000"

// New builds the application logger
// The screen belongs to the terminal UI, so output only goes to rotating files under cfg.Dir
// Without debug the logger is a no-op and nothing is created on disk
func New(cfg config.LogConfig, debug bool) (*zap.Logger, io.Closer, error) {
	if !debug {
		return zap.NewNop(), nopCloser{}, nil
	}

	lv := zap.NewAtomicLevel()
	if err := lv.UnmarshalText([]byte(cfg.Level)); err != nil {
		_ = lv.UnmarshalText([]byte("info"))
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir %s: %w", cfg.Dir, err)
	}

	name := filepath.Join(cfg.Dir, cfg.File)
	out := rotator(cfg, name)
	errs := rotator(cfg, strings.TrimSuffix(name, filepath.Ext(name))+"_error"+filepath.Ext(name))

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg()), zapcore.AddSync(out), lv),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg()), zapcore.AddSync(errs), zap.ErrorLevel),
	)
	logger := zap.New(core, zap.AddCaller())
	return logger, closers{out, errs}, nil
}

func rotator(cfg config.LogConfig, file string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

func encCfg() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + t.Format(timeFmt) + "]")
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.ConsoleSeparator = " "
	return cfg
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, cl := range c {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
