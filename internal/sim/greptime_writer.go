package sim

import (
	"context"
	"log"
	"net"
	"strconv"

	"director-sim/internal/director"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes director events to GreptimeDB via the ingester client
type GreptimeDBWriter struct {
	client *greptime.Client
	db     string
}

// tableDDLs documents the intended table schemas. The gRPC ingester client
// cannot execute SQL DDL; GreptimeDB auto-creates tables on first write.
var tableDDLs = []string{
	`
CREATE TABLE IF NOT EXISTS director_difficulty (
  match_id STRING TAG,
  profile STRING,
  scaling_factor DOUBLE,
  reaction_time DOUBLE,
  accuracy DOUBLE,
  aggression DOUBLE,
  spawn_rate DOUBLE,
  health DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`,
	`
CREATE TABLE IF NOT EXISTS director_pacing (
  match_id STRING TAG,
  phase STRING,
  target_tension DOUBLE,
  tension DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`,
	`
CREATE TABLE IF NOT EXISTS director_encounters (
  match_id STRING TAG,
  event_type STRING TAG,
  encounter_id STRING,
  type STRING,
  difficulty STRING,
  x DOUBLE,
  y DOUBLE,
  z DOUBLE,
  actor_count INT64,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`,
}

// NewGreptimeDBWriter creates a new GreptimeDB writer and auto-creates the tables if needed.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host = endpoint
		portStr = ""
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{client: client, db: database}, nil
}

// WriteDifficulty inserts a difficulty adjustment row.
func (w *GreptimeDBWriter) WriteDifficulty(row director.DifficultyRow) error {
	tbl, err := table.New(row.TableName())
	if err != nil {
		return err
	}
	tbl.AddTagColumn("match_id", types.STRING)
	tbl.AddFieldColumn("profile", types.STRING)
	tbl.AddFieldColumn("scaling_factor", types.FLOAT64)
	tbl.AddFieldColumn("reaction_time", types.FLOAT64)
	tbl.AddFieldColumn("accuracy", types.FLOAT64)
	tbl.AddFieldColumn("aggression", types.FLOAT64)
	tbl.AddFieldColumn("spawn_rate", types.FLOAT64)
	tbl.AddFieldColumn("health", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(
		row.MatchID,
		row.Profile,
		row.ScalingFactor,
		row.ReactionTime,
		row.Accuracy,
		row.Aggression,
		row.SpawnRate,
		row.Health,
		row.Timestamp,
	); err != nil {
		return err
	}

	return w.write(tbl)
}

// WritePacing inserts a pacing transition row.
func (w *GreptimeDBWriter) WritePacing(row director.PacingRow) error {
	tbl, err := table.New(row.TableName())
	if err != nil {
		return err
	}
	tbl.AddTagColumn("match_id", types.STRING)
	tbl.AddFieldColumn("phase", types.STRING)
	tbl.AddFieldColumn("target_tension", types.FLOAT64)
	tbl.AddFieldColumn("tension", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(
		row.MatchID,
		row.Phase,
		row.TargetTension,
		row.Tension,
		row.Timestamp,
	); err != nil {
		return err
	}

	return w.write(tbl)
}

// WriteEncounter inserts an encounter lifecycle row.
func (w *GreptimeDBWriter) WriteEncounter(row director.EncounterRow) error {
	tbl, err := table.New(row.TableName())
	if err != nil {
		return err
	}
	tbl.AddTagColumn("match_id", types.STRING)
	tbl.AddTagColumn("event_type", types.STRING)
	tbl.AddFieldColumn("encounter_id", types.STRING)
	tbl.AddFieldColumn("type", types.STRING)
	tbl.AddFieldColumn("difficulty", types.STRING)
	tbl.AddFieldColumn("x", types.FLOAT64)
	tbl.AddFieldColumn("y", types.FLOAT64)
	tbl.AddFieldColumn("z", types.FLOAT64)
	tbl.AddFieldColumn("actor_count", types.INT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(
		row.MatchID,
		row.EventType,
		row.EncounterID,
		row.Type,
		row.Difficulty,
		row.X,
		row.Y,
		row.Z,
		int64(row.ActorCount),
		row.Timestamp,
	); err != nil {
		return err
	}

	return w.write(tbl)
}

func (w *GreptimeDBWriter) write(tbl *table.Table) error {
	ctx := ingesterContext.New(context.Background())
	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	return nil
}
