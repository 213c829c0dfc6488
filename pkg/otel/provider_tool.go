package otel

import (
	"context"

	"github.com/adrianliechti/waves-mcp/pkg/tool"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Tool interface {
	Observable
	tool.Provider
}

type observableTool struct {
	provider string

	tool tool.Provider

	calls metric.Int64Counter
}

func NewTool(provider string, p tool.Provider) Tool {
	t := &observableTool{
		tool: p,

		provider: provider,
	}

	t.otelSetup()

	return t
}

func (p *observableTool) otelSetup() {
	meter := otel.Meter(instrumentationName)

	p.calls, _ = meter.Int64Counter("waves.tool.calls",
		metric.WithDescription("Number of tool executions"),
	)
}

func (p *observableTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "tools")
	defer span.End()

	tools, err := p.tool.Tools(ctx)

	return tools, err
}

func (p *observableTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	attrs := KeyValues(
		[]KeyValue{String("tool.provider", p.provider), String("tool.name", name)},
		EndUserAttrs(ctx),
	)

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "execute_tool "+name, trace.WithAttributes(attrs...))
	defer span.End()

	result, err := p.tool.Execute(ctx, name, parameters)

	status := "ok"

	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if r, ok := result.(*tool.Result); ok {
		if message, failed := r.Error(); failed {
			status = "error"
			span.SetStatus(codes.Error, message)
		}
	}

	if p.calls != nil {
		p.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("tool.name", name),
			attribute.String("status", status),
		))
	}

	return result, err
}
