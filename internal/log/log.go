package log

import (
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger(zapcore.AddSync(os.Stdout))
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "action",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

func newLogger(ws zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), ws, zapcore.DebugLevel)
	return zap.New(core)
}

// Init sends entries to stdout and, when path is set, appends them to that
// file as well.
func Init(path string) error {
	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		sinks = append(sinks, zapcore.AddSync(f))
	}
	replace(newLogger(zapcore.NewMultiWriteSyncer(sinks...)))
	return nil
}

// SetOutput redirects entries to w; tests use it to capture lines.
func SetOutput(w io.Writer) {
	replace(newLogger(zapcore.AddSync(w)))
}

func replace(l *zap.Logger) {
	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()
	_ = old.Sync()
}

// L returns the current process logger for code without a request.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Sync() { _ = L().Sync() }

func requestFields(c *fiber.Ctx) []zap.Field {
	if c == nil {
		return nil
	}
	fs := []zap.Field{
		zap.String("ip", c.IP()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		fs = append(fs, zap.String("req_id", rid))
	}
	return fs
}

func write(level zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	fs := requestFields(c)
	if kind != "" {
		fs = append(fs, zap.String("kind", kind))
	}
	if err != nil {
		fs = append(fs, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		fs = append(fs, zap.Any("fields", fields))
	}
	if ce := L().Check(level, action); ce != nil {
		ce.Write(fs...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "", c, action, err, fields)
}
