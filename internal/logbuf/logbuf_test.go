package logbuf

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestBuffer_WriteAndQuery(t *testing.T) {
	b := New(4)
	for i := 0; i < 3; i++ {
		b.Write(Entry{Time: time.Now(), Level: "INFO", Message: "m"})
	}

	got := b.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}

func TestBuffer_EvictsOldest(t *testing.T) {
	b := New(3)
	for _, msg := range []string{"one", "two", "three", "four"} {
		b.Write(Entry{Time: time.Now(), Level: "INFO", Message: msg})
	}

	got := b.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Message != "two" || got[2].Message != "four" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestBuffer_LevelFilter(t *testing.T) {
	b := New(8)
	b.Write(Entry{Time: time.Now(), Level: "DEBUG", Message: "d"})
	b.Write(Entry{Time: time.Now(), Level: "ERROR", Message: "e"})

	got := b.Query(time.Time{}, slog.LevelWarn, 0)
	if len(got) != 1 || got[0].Message != "e" {
		t.Errorf("expected only the error entry, got %v", got)
	}
}

func TestBuffer_Limit(t *testing.T) {
	b := New(8)
	for _, msg := range []string{"a", "b", "c"} {
		b.Write(Entry{Time: time.Now(), Level: "INFO", Message: msg})
	}

	got := b.Query(time.Time{}, slog.LevelDebug, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Limit keeps the newest entries.
	if got[0].Message != "b" || got[1].Message != "c" {
		t.Errorf("unexpected entries: %v", got)
	}
}

func TestHandler_CapturesBelowInnerLevel(t *testing.T) {
	buf := New(8)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(NewHandler(inner, buf))

	logger.Debug("hidden from inner", "k", "v")

	got := buf.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 1 {
		t.Fatalf("expected debug entry captured, got %d", len(got))
	}
	if got[0].Attrs["k"] != "v" {
		t.Errorf("expected attr captured, got %v", got[0].Attrs)
	}
}

func TestHandler_ErrorAttrsAsStrings(t *testing.T) {
	buf := New(8)
	h := NewHandler(slog.NewTextHandler(io.Discard, nil), buf)

	r := slog.NewRecord(time.Now(), slog.LevelError, "failed", 0)
	r.AddAttrs(slog.Any("error", errors.New("boom")))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].Attrs["error"] != "boom" {
		t.Errorf("expected error rendered as string, got %#v", got[0].Attrs["error"])
	}
}

func TestHandler_WithAttrs(t *testing.T) {
	buf := New(8)
	logger := slog.New(NewHandler(slog.NewTextHandler(io.Discard, nil), buf)).With("svc", "twmcp")

	logger.Info("hello")

	got := buf.Query(time.Time{}, slog.LevelDebug, 0)
	if len(got) != 1 || got[0].Attrs["svc"] != "twmcp" {
		t.Errorf("expected pre-bound attr, got %v", got)
	}
}
