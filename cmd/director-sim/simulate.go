package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"director-sim/internal/admin"
	"director-sim/internal/config"
	"director-sim/internal/logging"
	"director-sim/internal/scenario"
	"director-sim/internal/sim"
)

var (
	simPrintOnly  bool
	simTUI        bool
	simConfigPath string
	simSchemaPath string
	simScriptPath string
	simTick       time.Duration
	simLogFile    string
	simAdminAddr  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the adaptive director against a simulated match",
	Long:  "simulate starts a match where simulated players fight director-spawned encounters, emitting difficulty, pacing, and encounter logs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()

		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		script, err := loadScript(cfg)
		if err != nil {
			return err
		}

		writer, cleanup, err := newWriters(cfg, simPrintOnly, simTUI, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		runner := sim.NewRunner(cfg, script, writer, tickInterval, log)

		srv := admin.NewServer(runner)
		go func() {
			log.Info("admin UI listening", "addr", simAdminAddr)
			if tw, ok := writer.(*sim.TUIWriter); ok {
				tw.SetAdminStatus(true)
			}
			if err := srv.Start(simAdminAddr); err != nil {
				log.Error("admin server failed", "err", err)
				os.Exit(1)
			}
		}()

		stop := make(chan struct{})
		go runner.Run(stop)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		close(stop)
		log.Info("simulation stopped")
		return nil
	},
}

// loadScript resolves the match script: an explicit --script file wins,
// then the config's named built-in arc, then no script at all.
func loadScript(cfg *config.MatchConfig) (*scenario.Script, error) {
	if simScriptPath != "" {
		return scenario.Load(simScriptPath)
	}
	if cfg.Script == "" {
		return nil, nil
	}
	if s := scenario.BuiltIn(cfg.Script); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("unknown built-in script %q", cfg.Script)
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print events to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render events in an interactive terminal UI")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/match.yaml", "Path to match configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/match.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simScriptPath, "script", "", "Path to a match script YAML (overrides the config's built-in arc)")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 100*time.Millisecond, "Simulation tick interval (e.g. 50ms, 1s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export encounter/difficulty/pacing logs (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address")
}
