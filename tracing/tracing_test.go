package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, exp
}

func TestNewTracer_NilConfig(t *testing.T) {
	tp, err := NewTracer(nil, "rbbench", "dev")

	assert.Nil(t, tp)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestNewTracer_Disabled(t *testing.T) {
	tp, err := NewTracer(&Config{}, "", "dev")

	require.NoError(t, err)
	assert.NotNil(t, tp)
	_ = tp.Shutdown(context.Background())
}

func TestNewTracer_EmptyServiceName(t *testing.T) {
	cfg := &Config{Enabled: true, OTLP: &OTLPConfig{Endpoint: "localhost:4318"}}

	tp, err := NewTracer(cfg, "", "dev")

	assert.Nil(t, tp)
	assert.ErrorIs(t, err, ErrEmptyServiceName)
}

func TestNewTracer_EmptyEndpoint(t *testing.T) {
	for _, cfg := range []*Config{
		{Enabled: true},
		{Enabled: true, OTLP: &OTLPConfig{}},
	} {
		tp, err := NewTracer(cfg, "rbbench", "dev")
		assert.Nil(t, tp)
		assert.ErrorIs(t, err, ErrEmptyEndpoint)
	}
}

func TestNewTracer_Success(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		headers  map[string]string
	}{
		{"plain", "localhost:4318", nil},
		{"http prefix", "http://localhost:4318", nil},
		{"https prefix", "https://localhost:4318", nil},
		{"headers", "localhost:4318", map[string]string{"Authorization": "Bearer token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Enabled:      true,
				SamplingRate: 0.5,
				OTLP:         &OTLPConfig{Endpoint: tt.endpoint, Headers: tt.headers},
			}

			tp, err := NewTracer(cfg, "rbbench", "dev")

			require.NoError(t, err)
			assert.NotNil(t, tp)
			_ = tp.Shutdown(context.Background())
		})
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.ErrorIs(t, (&Config{SamplingRate: 1.5}).Validate(), ErrInvalidSamplingRate)
	assert.ErrorIs(t, (&Config{SamplingRate: -0.1}).Validate(), ErrInvalidSamplingRate)

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrNilConfig)
}

func TestMustNewTracer(t *testing.T) {
	assert.NotPanics(t, func() {
		tp := MustNewTracer(&Config{}, "rbbench", "dev")
		_ = tp.Shutdown(context.Background())
	})
	assert.Panics(t, func() {
		MustNewTracer(nil, "rbbench", "dev")
	})
}

func TestSpanHelpers(t *testing.T) {
	tp, exp := newRecorder(t)

	ctx, span := StartSpan(context.Background(), Tracer(tp), "workload.insert", attribute.Int("keys", 8))
	SetSpanAttributes(ctx, attribute.Int("len", 8))
	AddSpanEvent(ctx, "verify", attribute.Int("step", 4))
	SetSpanError(ctx, errors.New("boom"))
	assert.Equal(t, span, SpanFromContext(ctx))
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "workload.insert", got.Name)
	assert.Equal(t, codes.Error, got.Status.Code)
	assert.Equal(t, "boom", got.Status.Description)
	assert.Contains(t, got.Attributes, attribute.Int("keys", 8))
	assert.Contains(t, got.Attributes, attribute.Int("len", 8))

	var names []string
	for _, ev := range got.Events {
		names = append(names, ev.Name)
	}
	// RecordError 会追加 exception 事件
	assert.Equal(t, []string{"verify", "exception"}, names)
}

func TestTracer_DefaultsToGlobal(t *testing.T) {
	assert.NotNil(t, Tracer(nil))
}
