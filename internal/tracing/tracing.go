package tracing

import (
	"context"
	"fmt"

	"github.com/DMarby/picsum-optimizer/internal/logger"
	"github.com/go-logr/stdr"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/DMarby/picsum-optimizer"

// Tracer starts spans for the optimizer, and flushes them on shutdown
type Tracer struct {
	trace.Tracer

	log      *logger.Logger
	shutdown func(context.Context) error
}

func newTracer(log *logger.Logger, provider trace.TracerProvider, shutdown func(context.Context) error) *Tracer {
	return &Tracer{
		Tracer:   provider.Tracer(instrumentationName),
		log:      log,
		shutdown: shutdown,
	}
}

// New creates a tracer batching spans to an OTLP gRPC collector
// The collector is configured through the OTEL_EXPORTER_OTLP_* environment variables
func New(ctx context.Context, log *logger.Logger, serviceName string) (*Tracer, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create opentelemetry grpc exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(serviceName))),
	)

	// Route otel's internal logging and errors through zap
	otel.SetLogger(stdr.New(zap.NewStdLog(log.Desugar())))
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		log.Errorw("opentelemetry error", "error", err)
	}))

	return newTracer(log, provider, provider.Shutdown), nil
}

// Noop creates a tracer whose spans are never recorded
func Noop(log *logger.Logger) *Tracer {
	return newTracer(log, trace.NewNoopTracerProvider(), func(context.Context) error { return nil })
}

// Shutdown flushes any spans that haven't been exported yet
func (t *Tracer) Shutdown(ctx context.Context) {
	if err := t.shutdown(ctx); err != nil {
		t.log.Errorw("failed to shutdown tracer", "error", err)
	}
}
