package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, ExporterFile, cfg.Exporter)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), SpanReadAsTrait)
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_ResolutionLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolutions.jsonl")

	provider, err := NewProvider(Config{
		Enabled:    true,
		Exporter:   ExporterFile,
		FilePath:   path,
		SampleRate: 1.0,
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), SpanReadAsObject)
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"call":"`+SpanReadAsObject+`"`)
}

func TestNewProvider_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"file without path", Config{Enabled: true, Exporter: ExporterFile}, "needs a file path"},
		{"unknown exporter", Config{Enabled: true, Exporter: "zipkin"}, `unsupported exporter "zipkin"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.cfg)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestNewProvider_NoExporter(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true, Exporter: ExporterNone, SampleRate: 0})
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), SpanValidate)
	require.True(t, span.SpanContext().IsValid(), "spans exist even without an exporter")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}
