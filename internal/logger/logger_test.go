package logger_test

import (
	"testing"

	"github.com/DMarby/picsum-optimizer/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCore(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := logger.FromCore(core)

	log.Infow("ignored")
	log.Warnw("kept", "key", "value")

	if logs.Len() != 1 {
		t.Fatalf("wrong number of log entries: %d", logs.Len())
	}

	entry := logs.All()[0]
	if entry.Message != "kept" {
		t.Errorf("wrong message %s", entry.Message)
	}

	if entry.ContextMap()["key"] != "value" {
		t.Errorf("wrong fields %+v", entry.ContextMap())
	}
}
