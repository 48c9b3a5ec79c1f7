package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  Gemini  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "provider", fields[0].Key)
	assert.Equal(t, "Gemini", fields[0].String)
	assert.Empty(t, StringFields())
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String("foo", "bar")).Info("test log")

	require.Equal(t, 1, observed.Len())
	assert.Equal(t, "bar", observed.All()[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	fallback.Info("another log")
}

func TestBackendFields(t *testing.T) {
	fields := BackendFields("extraction", "gpt-5-mini", "openai", "")
	require.Len(t, fields, 3)
	assert.Equal(t, FieldStage, fields[0].Key)
	assert.Equal(t, FieldBackend, fields[1].Key)
	assert.Equal(t, FieldProvider, fields[2].Key)
}

func TestWithDocument(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	WithDocument(zap.New(core), "acme.pdf", "v2").Debug("evaluating")

	ctx := observed.All()[0].ContextMap()
	assert.Equal(t, "acme.pdf", ctx[FieldDocument])
	assert.Equal(t, "v2", ctx[FieldPromptVersion])
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "abc", TruncateForLog("  abc  ", 5))
	assert.Equal(t, "ação...", TruncateForLog("açãozinha", 4))
	assert.Equal(t, "", TruncateForLog("abc", 0))
}
