package otel

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationName = "github.com/adrianliechti/waves-mcp"

var (
	EnableDebug     = false
	EnableTelemetry = false
)

func init() {
	EnableDebug = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
}

type Observable interface {
	otelSetup()
}

type shutdownFunc func(ctx context.Context) error

// Setup configures logging and, if telemetry is enabled, OTLP export of
// logs, traces and metrics. The returned function flushes the exporters.
func Setup(ctx context.Context, name, version string) (func(context.Context) error, error) {
	if EnableDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if !EnableTelemetry {
		return func(context.Context) error { return nil }, nil
	}

	resource, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewSchemaless(
		attribute.String("service.name", name),
		attribute.String("service.version", version),
	))

	if err != nil {
		return nil, err
	}

	var shutdowns []shutdownFunc

	shutdown := func(ctx context.Context) error {
		var result error

		for _, fn := range shutdowns {
			result = errors.Join(result, fn(ctx))
		}

		return result
	}

	for _, setup := range []func(context.Context, *sdkresource.Resource) (shutdownFunc, error){
		setupLogger,
		setupTracer,
		setupMeter,
	} {
		fn, err := setup(ctx, resource)

		if err != nil {
			shutdown(ctx)
			return nil, err
		}

		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
