package sim

import "director-sim/internal/director"

// MultiWriter fans director events out to multiple writers.
type MultiWriter struct {
	writers []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...EventWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// WriteDifficulty sends a difficulty row to all writers.
func (mw *MultiWriter) WriteDifficulty(row director.DifficultyRow) error {
	for _, w := range mw.writers {
		if err := w.WriteDifficulty(row); err != nil {
			return err
		}
	}
	return nil
}

// WritePacing sends a pacing row to all writers.
func (mw *MultiWriter) WritePacing(row director.PacingRow) error {
	for _, w := range mw.writers {
		if err := w.WritePacing(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteEncounter sends an encounter row to all writers.
func (mw *MultiWriter) WriteEncounter(row director.EncounterRow) error {
	for _, w := range mw.writers {
		if err := w.WriteEncounter(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteStatus forwards a status snapshot to writers that accept one.
func (mw *MultiWriter) WriteStatus(st director.Status) error {
	for _, w := range mw.writers {
		if sw, ok := w.(StatusWriter); ok {
			if err := sw.WriteStatus(st); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes writers that hold resources.
func (mw *MultiWriter) Close() error {
	var err error
	for _, w := range mw.writers {
		if c, ok := w.(interface{ Close() error }); ok {
			if e := c.Close(); e != nil && err == nil {
				err = e
			}
		}
	}
	return err
}
