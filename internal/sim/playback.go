package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"director-sim/internal/director"
)

// Gaps between recorded rows can span minutes of idle match time; cap
// the sleep so replays stay watchable regardless of speed.
const maxReplayDelay = 10 * time.Second

// ReplayLog replays encounter rows from r to writer, pacing them by
// the recorded timestamp gaps divided by speed. A speed <= 0 disables
// pacing entirely. Returns the number of rows replayed.
func ReplayLog(r io.Reader, writer EventWriter, speed float64) (int, error) {
	dec := json.NewDecoder(r)
	var prev time.Time
	replayed := 0
	for {
		var row director.EncounterRow
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			return replayed, nil
		}
		if err != nil {
			return replayed, fmt.Errorf("decode row %d: %w", replayed+1, err)
		}
		if speed > 0 && !prev.IsZero() {
			gap := time.Duration(float64(row.Timestamp.Sub(prev)) / speed)
			if gap > maxReplayDelay {
				gap = maxReplayDelay
			}
			if gap > 0 {
				time.Sleep(gap)
			}
		}
		if err := writer.WriteEncounter(row); err != nil {
			return replayed, fmt.Errorf("replay row %d: %w", replayed+1, err)
		}
		prev = row.Timestamp
		replayed++
	}
}

// ReplayLogFile opens an exported encounter log and replays it.
func ReplayLogFile(path string, writer EventWriter, speed float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
