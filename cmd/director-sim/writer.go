package main

import (
	"os"

	"golang.org/x/term"

	"director-sim/internal/config"
	"director-sim/internal/sim"
)

// newWriters sets up event writers based on flags and env vars. It
// returns the writer and a cleanup function to close any resources.
func newWriters(cfg *config.MatchConfig, printOnly, tui bool, logFile string) (sim.EventWriter, func(), error) {
	cleanup := func() {}

	writer, err := baseWriter(cfg, printOnly, tui)
	if err != nil {
		return nil, nil, err
	}
	if c, ok := writer.(interface{ Close() error }); ok {
		cleanup = func() { c.Close() }
	}
	if logFile == "" {
		return writer, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".difficulty", logFile+".pacing")
	if err != nil {
		return nil, nil, err
	}
	mw := sim.NewMultiWriter(writer, fw)
	cleanup = func() { mw.Close() }
	return mw, cleanup, nil
}

// baseWriter chooses the underlying writer from flags and env vars.
// GREPTIMEDB_ENDPOINT selects the database sink unless printOnly is
// set; an interactive stdout gets the colorized writer.
func baseWriter(cfg *config.MatchConfig, printOnly, tui bool) (sim.EventWriter, error) {
	if tui {
		return sim.NewTUIWriter(cfg), nil
	}
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return sim.NewColorStdoutWriter(cfg), nil
		}
		return &sim.StdoutWriter{}, nil
	}

	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	database := os.Getenv("GREPTIMEDB_DATABASE")
	if database == "" {
		database = "public"
	}
	return sim.NewGreptimeDBWriter(endpoint, database)
}
