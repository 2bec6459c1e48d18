package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"director-sim/internal/director"
	"director-sim/internal/sim"
)

func TestNewWritersPrintOnly(t *testing.T) {
	w, cleanup, err := newWriters(nil, true, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	assertStdoutWriter(t, w)
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	w, cleanup, err := newWriters(nil, false, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	assertStdoutWriter(t, w)
}

// assertStdoutWriter accepts both stdout variants since the colorized
// writer is picked when tests run attached to a terminal.
func assertStdoutWriter(t *testing.T, w sim.EventWriter) {
	t.Helper()
	switch w.(type) {
	case *sim.StdoutWriter, *sim.ColorStdoutWriter:
	default:
		t.Fatalf("expected a stdout writer, got %T", w)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encounters.log")
	w, cleanup, err := newWriters(nil, true, false, path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", w)
	}

	row := director.EncounterRow{
		MatchID:     "m1",
		EventType:   director.EncounterSpawned,
		EncounterID: "e1",
		Type:        "patrol",
		Timestamp:   time.Now(),
	}
	if err := w.WriteEncounter(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.WritePacing(director.PacingRow{MatchID: "m1", Phase: "rest", Timestamp: time.Now()}); err != nil {
		t.Fatalf("write pacing failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected encounter log to be non-empty")
	}
	paceInfo, err := os.Stat(path + ".pacing")
	if err != nil {
		t.Fatalf("stat pacing failed: %v", err)
	}
	if paceInfo.Size() == 0 {
		t.Fatalf("expected pacing log to be non-empty")
	}
}
