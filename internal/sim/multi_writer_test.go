package sim

import (
	"testing"
	"time"

	"director-sim/internal/director"
)

// captureWriter records every row it receives. Shared by the writer,
// playback, and runner tests.
type captureWriter struct {
	difficulty []director.DifficultyRow
	pacing     []director.PacingRow
	encounters []director.EncounterRow
	statuses   []director.Status
	closed     bool
}

func (c *captureWriter) WriteDifficulty(row director.DifficultyRow) error {
	c.difficulty = append(c.difficulty, row)
	return nil
}

func (c *captureWriter) WritePacing(row director.PacingRow) error {
	c.pacing = append(c.pacing, row)
	return nil
}

func (c *captureWriter) WriteEncounter(row director.EncounterRow) error {
	c.encounters = append(c.encounters, row)
	return nil
}

func (c *captureWriter) WriteStatus(st director.Status) error {
	c.statuses = append(c.statuses, st)
	return nil
}

func (c *captureWriter) Close() error {
	c.closed = true
	return nil
}

// plainWriter has no status or close support.
type plainWriter struct {
	encounters int
}

func (p *plainWriter) WriteDifficulty(director.DifficultyRow) error { return nil }
func (p *plainWriter) WritePacing(director.PacingRow) error         { return nil }
func (p *plainWriter) WriteEncounter(director.EncounterRow) error {
	p.encounters++
	return nil
}

func TestMultiWriterFansOut(t *testing.T) {
	a := &captureWriter{}
	b := &captureWriter{}
	mw := NewMultiWriter(a, b)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := mw.WriteDifficulty(director.DifficultyRow{MatchID: "m", Timestamp: ts}); err != nil {
		t.Fatal(err)
	}
	if err := mw.WritePacing(director.PacingRow{MatchID: "m", Phase: "building", Timestamp: ts}); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteEncounter(director.EncounterRow{MatchID: "m", EventType: director.EncounterSpawned, Timestamp: ts}); err != nil {
		t.Fatal(err)
	}

	for _, w := range []*captureWriter{a, b} {
		if len(w.difficulty) != 1 || len(w.pacing) != 1 || len(w.encounters) != 1 {
			t.Errorf("writer got %d/%d/%d rows, want 1/1/1",
				len(w.difficulty), len(w.pacing), len(w.encounters))
		}
	}
}

func TestMultiWriterStatusOnlyToSupportingWriters(t *testing.T) {
	a := &captureWriter{}
	p := &plainWriter{}
	mw := NewMultiWriter(a, p)

	if err := mw.WriteStatus(director.Status{MatchID: "m"}); err != nil {
		t.Fatal(err)
	}
	if len(a.statuses) != 1 {
		t.Errorf("status writer got %d statuses, want 1", len(a.statuses))
	}
}

func TestMultiWriterClose(t *testing.T) {
	a := &captureWriter{}
	p := &plainWriter{}
	mw := NewMultiWriter(a, p)

	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	if !a.closed {
		t.Error("closable writer was not closed")
	}
}
