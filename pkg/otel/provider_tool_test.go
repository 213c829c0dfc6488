package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/adrianliechti/waves-mcp/pkg/tool"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type stubTool struct {
	result any
	err    error
}

func (s *stubTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	return []tool.Tool{{Name: "stub"}}, nil
}

func (s *stubTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	return s.result, s.err
}

func setupTest(t *testing.T) (*tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()

	tp := otel.GetTracerProvider()
	mp := otel.GetMeterProvider()

	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
	})

	return recorder, reader
}

func TestToolStatus(t *testing.T) {
	tests := []struct {
		name string

		result any
		err    error

		code        codes.Code
		description string
		status      string
	}{
		{
			name:   "resource",
			result: tool.NewResult(tool.Resource{URI: "waves://voices", Text: "{}"}),
			code:   codes.Unset,
			status: "ok",
		},
		{
			name:        "error envelope",
			result:      tool.NewError("tts failed: waves API error: 500 Internal Server Error: boom"),
			code:        codes.Error,
			description: "tts failed: waves API error: 500 Internal Server Error: boom",
			status:      "error",
		},
		{
			name:        "go error",
			err:         errors.New("connection reset"),
			code:        codes.Error,
			description: "connection reset",
			status:      "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, reader := setupTest(t)

			p := NewTool("waves", &stubTool{result: tt.result, err: tt.err})

			_, err := p.Execute(context.Background(), "stub", nil)
			require.Equal(t, tt.err, err)

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			span := spans[0]

			require.Equal(t, "execute_tool stub", span.Name())
			require.Equal(t, tt.code, span.Status().Code)
			require.Equal(t, tt.description, span.Status().Description)
			require.Contains(t, span.Attributes(), attribute.String("tool.name", "stub"))

			var rm metricdata.ResourceMetrics
			require.NoError(t, reader.Collect(context.Background(), &rm))

			require.Equal(t, int64(1), countCalls(t, rm, tt.status))
		})
	}
}

func countCalls(t *testing.T, rm metricdata.ResourceMetrics, status string) int64 {
	t.Helper()

	var total int64

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "waves.tool.calls" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "unexpected data type %T", m.Data)

			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value("status"); ok && v.AsString() == status {
					total += dp.Value
				}
			}
		}
	}

	return total
}
