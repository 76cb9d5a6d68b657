package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)
	return &buf
}

func TestLog_FormatsLevelCategoryAndFields(t *testing.T) {
	buf := withBuffer(t)

	Info(CatImport, "importer attempt failed", "handler", "finite language", "attempt", 2)

	line := buf.String()
	require.Contains(t, line, "[INFO] [import] importer attempt failed")
	require.Contains(t, line, "handler=finite language")
	require.Contains(t, line, "attempt=2")
	require.True(t, strings.HasSuffix(line, "\n"))
}

func TestLog_OddFieldCountMarksMissingValue(t *testing.T) {
	buf := withBuffer(t)

	Debug(CatCLI, "binding", "slot")

	require.Contains(t, buf.String(), "slot=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	buf := withBuffer(t)
	SetMinLevel(LevelWarn)

	Debug(CatConfig, "hidden")
	Info(CatConfig, "hidden too")
	Warn(CatConfig, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [config] shown")
}

func TestLog_Disabled(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(false)

	Error(CatCache, "dropped")

	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatCLI, "nobody listening")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestErrorErr_NilError(t *testing.T) {
	buf := withBuffer(t)

	ErrorErr(CatImport, "validator failed", nil)

	require.Contains(t, buf.String(), "error=<nil>")
}

func TestInit_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Info(CatTrace, "provider started", "exporter", "stdout")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [trace] provider started exporter=stdout")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
