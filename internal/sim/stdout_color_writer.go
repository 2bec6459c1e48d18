// ColorStdoutWriter prints human-friendly, colorized director events to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"director-sim/internal/config"
	"director-sim/internal/director"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// phaseColors maps pacing phases to their display color.
var phaseColors = map[string]string{
	"rest":     colorGreen,
	"building": colorYellow,
	"action":   colorMagenta,
	"climax":   colorRed,
}

// ColorStdoutWriter prints director rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.MatchConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.MatchConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Match Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Match ID:\t%s\n", w.cfg.MatchID)
	fmt.Fprintf(tw, "Arena:\t%.0fx%.0f\n", w.cfg.Arena.Width, w.cfg.Arena.Height)
	fmt.Fprintf(tw, "Spawn Points:\t%d\n", len(w.cfg.SpawnPoints))
	fmt.Fprintf(tw, "Players:\t%d\n", w.cfg.PlayerCount())
	fmt.Fprintf(tw, "Round Length (s):\t%.0f\n", w.cfg.RoundSeconds)
	fmt.Fprintf(tw, "Script:\t%s\n", w.cfg.Script)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func phaseColor(phase string) string {
	if c, ok := phaseColors[phase]; ok {
		return c
	}
	return colorBlue
}

// WriteDifficulty prints a difficulty adjustment.
func (w *ColorStdoutWriter) WriteDifficulty(row director.DifficultyRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sDIFFICULTY%s profile=%s%s%s scaling=%s%.2f%s accuracy=%.2f spawn_rate=%.2f health=%.2f\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset,
		colorYellow, row.Profile, colorReset,
		colorGreen, row.ScalingFactor, colorReset,
		row.Accuracy, row.SpawnRate, row.Health)
	return nil
}

// WritePacing prints a pacing phase transition.
func (w *ColorStdoutWriter) WritePacing(row director.PacingRow) error {
	w.once.Do(w.printOverview)
	c := phaseColor(row.Phase)
	fmt.Fprintf(w.out, "%s[%s]%s %sPACING%s phase=%s%s%s tension=%.2f target=%.2f\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, colorReset,
		c, row.Phase, colorReset,
		row.Tension, row.TargetTension)
	return nil
}

// WriteEncounter prints an encounter lifecycle event.
func (w *ColorStdoutWriter) WriteEncounter(row director.EncounterRow) error {
	w.once.Do(w.printOverview)
	c := colorGreen
	if row.EventType == director.EncounterEnded {
		c = colorGray
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sENCOUNTER%s %s%s%s type=%s%s%s id=%s actors=%d pos=(%.1f,%.1f)",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorRed, colorReset,
		c, row.EventType, colorReset,
		colorMagenta, row.Type, colorReset,
		row.EncounterID, row.ActorCount, row.X, row.Y)
	if row.Difficulty != "" {
		fmt.Fprintf(w.out, " difficulty=%s%s%s", colorYellow, row.Difficulty, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}
