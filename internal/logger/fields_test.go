package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestForCommand(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	ForCommand(zap.New(core), "sesctl employees list", " http://localhost:8000 ").Info("employees listed")
	ForCommand(zap.New(core), "sesctl version", "").Info("version")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldCommand] != "sesctl employees list" || ctx[FieldAPIURL] != "http://localhost:8000" {
		t.Fatalf("unexpected fields: %v", ctx)
	}

	ctx = entries[1].ContextMap()
	if _, ok := ctx[FieldAPIURL]; ok {
		t.Fatalf("expected blank api url to be left out: %v", ctx)
	}
}

func TestForModel(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	ForModel(zap.New(core), "gemini", "gemini-2.5-flash").Info("gemini review request", Employee(7))

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "gemini" || ctx[FieldModel] != "gemini-2.5-flash" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
	if ctx[FieldEmployee] != int64(7) {
		t.Fatalf("expected employee id 7, got %v", ctx[FieldEmployee])
	}
}

func TestScopedNilLogger(t *testing.T) {
	log := ForModel(nil, "", "")
	if log == nil {
		t.Fatalf("expected a no-op logger")
	}

	// Logging through the fallback must not panic.
	log.Info("ignored")
}
