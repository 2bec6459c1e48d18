package sim

import (
	"encoding/json"
	"os"

	"director-sim/internal/director"
)

// FileWriter writes director events to JSONL files, one stream per
// event kind.
type FileWriter struct {
	encFile  *os.File
	diffFile *os.File
	paceFile *os.File
	encEnc   *json.Encoder
	diffEnc  *json.Encoder
	paceEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. difficultyPath or pacingPath may
// be empty to skip those logs; the encounter log is always written.
func NewFileWriter(encounterPath, difficultyPath, pacingPath string) (*FileWriter, error) {
	ef, err := os.Create(encounterPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{encFile: ef, encEnc: json.NewEncoder(ef)}
	if difficultyPath != "" {
		df, err := os.Create(difficultyPath)
		if err != nil {
			ef.Close()
			return nil, err
		}
		fw.diffFile = df
		fw.diffEnc = json.NewEncoder(df)
	}
	if pacingPath != "" {
		pf, err := os.Create(pacingPath)
		if err != nil {
			if fw.diffFile != nil {
				fw.diffFile.Close()
			}
			ef.Close()
			return nil, err
		}
		fw.paceFile = pf
		fw.paceEnc = json.NewEncoder(pf)
	}
	return fw, nil
}

// WriteEncounter logs an encounter lifecycle row.
func (f *FileWriter) WriteEncounter(row director.EncounterRow) error {
	return f.encEnc.Encode(row)
}

// WriteDifficulty logs a difficulty adjustment row, if enabled.
func (f *FileWriter) WriteDifficulty(row director.DifficultyRow) error {
	if f.diffEnc == nil {
		return nil
	}
	return f.diffEnc.Encode(row)
}

// WritePacing logs a pacing transition row, if enabled.
func (f *FileWriter) WritePacing(row director.PacingRow) error {
	if f.paceEnc == nil {
		return nil
	}
	return f.paceEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.encFile != nil {
		if e := f.encFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.diffFile != nil {
		if e := f.diffFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.paceFile != nil {
		if e := f.paceFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
