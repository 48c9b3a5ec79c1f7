package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider      = "ai_provider"
	FieldModel         = "ai_model"
	FieldBackend       = "backend"
	FieldDocument      = "document"
	FieldStage         = "stage"
	FieldPromptVersion = "prompt_version"
)

type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace
// and omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// BackendFields describes the model backend serving one pipeline stage.
func BackendFields(stage, key, provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldStage, Value: stage},
		StringField{Key: FieldBackend, Value: key},
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithDocument(logger *zap.Logger, document, promptVersion string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldDocument, Value: document},
		StringField{Key: FieldPromptVersion, Value: promptVersion},
	)...)
}
