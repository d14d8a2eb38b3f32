// Package logger builds the zap loggers used by the CLI and the HTTP server.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FieldLabel is the structured log field key for a resume label.
	FieldLabel = "label"
	// FieldReportID is the structured log field key for a stored report.
	FieldReportID = "report_id"
	// FieldScore is the structured log field key for a total score.
	FieldScore = "total_score"
)

// New returns a logger writing to stderr so that stdout stays free for
// command output. json selects JSON encoding; debug lowers the level.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	return cfg.Build()
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// AnalysisFields describes one analysis run. An empty label is omitted.
func AnalysisFields(label string, totalScore int, hasJob bool) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if label = strings.TrimSpace(label); label != "" {
		fields = append(fields, zap.String(FieldLabel, label))
	}
	return append(fields,
		zap.Int(FieldScore, totalScore),
		zap.Bool("job_description", hasJob),
	)
}
