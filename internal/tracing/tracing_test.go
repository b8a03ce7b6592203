package tracing_test

import (
	"context"
	"testing"

	"github.com/DMarby/picsum-optimizer/internal/logger"
	"github.com/DMarby/picsum-optimizer/internal/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoop(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tracer := tracing.Noop(logger.FromCore(core))

	_, span := tracer.Start(context.Background(), "test.Span")
	span.End()

	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Error("noop tracer recorded a span")
	}

	tracer.Shutdown(context.Background())
	if logs.Len() != 0 {
		t.Errorf("unexpected log entries %+v", logs.All())
	}
}
