package sim

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"director-sim/internal/director"
)

func TestReplayLog(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []director.EncounterRow{
		{MatchID: "m", EncounterID: "e1", EventType: director.EncounterSpawned, Type: "patrol", Timestamp: base},
		{MatchID: "m", EncounterID: "e2", EventType: director.EncounterSpawned, Type: "ambush", Timestamp: base.Add(2 * time.Second)},
		{MatchID: "m", EncounterID: "e1", EventType: director.EncounterEnded, Timestamp: base.Add(5 * time.Second)},
	}
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}

	w := &captureWriter{}
	n, err := ReplayLog(&buf, w, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || len(w.encounters) != 3 {
		t.Fatalf("replayed %d rows (%d written), want 3", n, len(w.encounters))
	}
	if w.encounters[1].EncounterID != "e2" {
		t.Errorf("row order not preserved: %+v", w.encounters[1])
	}
	if w.encounters[2].EventType != director.EncounterEnded {
		t.Errorf("last event = %q, want ended", w.encounters[2].EventType)
	}
}

func TestReplayLogBadInput(t *testing.T) {
	buf := bytes.NewBufferString(`{"match_id":`)
	if _, err := ReplayLog(buf, &captureWriter{}, 0); err == nil {
		t.Fatal("expected decode error")
	}
}
