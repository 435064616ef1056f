package common

import (
	"fmt"
	"log/slog"
	"testing"
	"time"
)

func TestBuildLogEntryParsesComponent(t *testing.T) {
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "store: migration complete", 0)
	record.AddAttrs(slog.Int("statements", 6))

	entry := buildLogEntry(record)
	if entry.Component != "store" {
		t.Fatalf("component not parsed: %+v", entry)
	}
	if entry.Level != "info" {
		t.Fatalf("level not normalized: %q", entry.Level)
	}
	if entry.Attributes["statements"] != int64(6) {
		t.Fatalf("attributes not captured: %+v", entry.Attributes)
	}
}

func TestBuildLogEntryWithoutComponent(t *testing.T) {
	record := slog.NewRecord(time.Time{}, slog.LevelWarn, "plain message", 0)
	entry := buildLogEntry(record)
	if entry.Component != "" {
		t.Fatalf("unexpected component: %q", entry.Component)
	}
	if entry.Time.IsZero() {
		t.Fatal("zero record time should be replaced")
	}
}

func TestLogSinkBoundsHistory(t *testing.T) {
	sink := newLogSink(3)
	for i := 0; i < 5; i++ {
		sink.capture(slog.NewRecord(time.Now(), slog.LevelInfo, fmt.Sprintf("entry %d", i), 0))
	}
	got := sink.entries()
	if len(got) != 3 {
		t.Fatalf("history not bounded: %d entries", len(got))
	}
	if got[0].Message != "entry 2" || got[2].Message != "entry 4" {
		t.Fatalf("oldest entries not evicted: %+v", got)
	}
}

func TestLoggerCapturesToSharedSink(t *testing.T) {
	before := len(LogEntries())
	Logger().Info("test: sink capture probe")
	after := LogEntries()
	if len(after) <= before {
		t.Fatal("logger output not captured in shared sink")
	}
	last := after[len(after)-1]
	if last.Component != "test" {
		t.Fatalf("captured entry missing component: %+v", last)
	}
}
