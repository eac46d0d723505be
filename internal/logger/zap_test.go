package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.Logf("modified %s\n", "cypress.config.ts")
	l.Log("done")
	l.Debugf("parsed %d statements", 3)
	l.Warnf("failed to create backup: %v", "denied")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "modified cypress.config.ts", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
}

func TestZapLoggerWithFile(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	path := filepath.Join(t.TempDir(), "logs", "cyconfig.log")
	l := NewZapLoggerFrom(zap.New(core)).WithFile(FileOptions{Path: path, MaxSize: 1})

	l.Logf("Successfully modified: %s", "cypress.config.ts")
	l.Debugf("filtered out")

	assert.Equal(t, 1, logs.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Successfully modified: cypress.config.ts"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))

	var _ Logger = NopLogger{}
	var _ Logger = (*ZapLogger)(nil)
}
