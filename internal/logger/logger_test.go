package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// capture redirects log output to a buffer for the duration of the test.
func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{"debug", Debug, "[DEBUG] loading 3 services\n"},
		{"info", Info, "[INFO] loading 3 services\n"},
		{"warn", Warn, "[WARN] loading 3 services\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log("loading %d services", 3)
			assert.Equal(t, tt.want, buf.String())
		})
		t.Run(tt.name+" quiet", func(t *testing.T) {
			buf := capture(t, false)
			tt.log("loading %d services", 3)
			assert.Empty(t, buf.String())
		})
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)
	Section("Catalog")
	assert.Equal(t, "\n=== Catalog ===\n", buf.String())

	quiet := capture(t, false)
	Section("Catalog")
	assert.Empty(t, quiet.String())
}

func TestSetOutput_SwitchesWriter(t *testing.T) {
	first := capture(t, true)
	Info("one")

	var second bytes.Buffer
	SetOutput(&second)
	Info("two")

	assert.Equal(t, "[INFO] one\n", first.String())
	assert.Equal(t, "[INFO] two\n", second.String())
}

func TestL(t *testing.T) {
	t.Run("nop when quiet", func(t *testing.T) {
		buf := capture(t, false)
		L().Info("catalog refreshed", zap.Int("services", 3))
		assert.Empty(t, buf.String())
	})

	t.Run("structured fields when verbose", func(t *testing.T) {
		buf := capture(t, true)
		L().Info("catalog refreshed", zap.Int("services", 3))

		out := buf.String()
		require.NotEmpty(t, out)
		assert.Contains(t, out, "[INFO] catalog refreshed")
		assert.Contains(t, out, `"services": 3`)
	})
}
