package logger_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mvninspect/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Golden(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("some message") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("some warning") },
			goldenName: "warn_basic",
		},
		{
			name:       "multiline warn",
			log:        func(l *logger.Logger) { l.Warn("warn1\nwarn2") },
			goldenName: "warn_multiline",
		},
		{
			name:       "standard error",
			log:        func(l *logger.Logger) { l.Error(os.ErrPermission) },
			goldenName: "error_simple",
		},
		{
			name: "multiline error",
			log: func(l *logger.Logger) {
				l.Error(errors.New("yaml: unmarshal errors:\n  line 30: cannot unmarshal"))
			},
			goldenName: "error_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.Wrap(
		zerr.Wrap(errors.New("connection refused"), "failed to download artifact"),
		"failed to resolve dependency",
	)
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "Error: failed to resolve dependency")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "→ failed to download artifact")
	assert.Contains(t, out, "→ connection refused")
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Warn("module skipped")
	lg.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"msg":"module skipped"`)
	assert.Contains(t, out, `"error":"boom"`)

	lg.SetJSON(false)
	buf.Reset()
	lg.Info("pretty again")
	assert.Equal(t, "pretty again\n", buf.String())
}

func TestFormatChain(t *testing.T) {
	got := logger.FormatChain([]string{"top", "middle\nmore", "root"})
	want := "Error: top\n\n  Caused by:\n    → middle\n      more\n    → root"
	assert.Equal(t, want, got)
}

func TestCauseChain_StopsAtStandardError(t *testing.T) {
	inner := errors.New("disk full")
	err := zerr.Wrap(inner, "failed to write report")

	chain := logger.CauseChain(err)
	require.NotEmpty(t, chain)
	assert.Equal(t, "failed to write report", chain[0])
	assert.Equal(t, "disk full", chain[len(chain)-1])
}
