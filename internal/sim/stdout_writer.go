// Writer implementation printing director events to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"director-sim/internal/director"
)

// StdoutWriter prints director event rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// WriteDifficulty outputs a difficulty adjustment row.
func (w *StdoutWriter) WriteDifficulty(row director.DifficultyRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WritePacing outputs a pacing transition row.
func (w *StdoutWriter) WritePacing(row director.PacingRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteEncounter outputs an encounter lifecycle row.
func (w *StdoutWriter) WriteEncounter(row director.EncounterRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}
