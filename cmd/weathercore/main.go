package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	dotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/wandiweather/internal/api"
	"github.com/lox/wandiweather/internal/core"
	"github.com/lox/wandiweather/internal/daemon"
	"github.com/lox/wandiweather/internal/store"
)

// CLI is the typed command surface: observe/forecast replay a single
// core call against persisted state, serve exposes the HTTP surface,
// daemon runs the periodic forecast-refresh cron job.
type CLI struct {
	DB      string `help:"Path to the sqlite state database." default:"data/weathercore.db" env:"WEATHERCORE_DB"`
	Station string `help:"Station identifier state is keyed by." default:"default" env:"WEATHERCORE_STATION"`

	Observe  ObserveCmd  `cmd:"" help:"Feed one snapshot (JSON on stdin or a file) through Observe."`
	Forecast ForecastCmd `cmd:"" help:"Print the current Forecast for a station."`
	Serve    ServeCmd    `cmd:"" help:"Run the read-only HTTP surface."`
	Daemon   DaemonCmd   `cmd:"" help:"Run the cron-scheduled periodic forecast refresh."`
}

type ObserveCmd struct {
	SnapshotFile string `arg:"" optional:"" help:"Path to a JSON snapshot file; reads stdin if omitted." type:"path"`
}

func (c *ObserveCmd) Run(cli *CLI, st *store.Store) error {
	var data []byte
	var err error
	if c.SnapshotFile != "" {
		data, err = os.ReadFile(c.SnapshotFile)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot core.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	previous, _, err := st.LoadState(cli.Station)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	inference, next, err := core.Observe(snapshot, previous)
	if err != nil {
		return fmt.Errorf("observe: %w", err)
	}
	if err := st.SaveState(cli.Station, next); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return json.NewEncoder(os.Stdout).Encode(inference)
}

type ForecastCmd struct {
	HorizonHours int `help:"Forecast horizon in hours (24 or 120)." default:"24"`
}

func (c *ForecastCmd) Run(cli *CLI, st *store.Store) error {
	state, ok, err := st.LoadState(cli.Station)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return fmt.Errorf("no observations recorded yet for station %q", cli.Station)
	}

	fc, err := core.Forecast(state, c.HorizonHours)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	return json.NewEncoder(os.Stdout).Encode(fc)
}

type ServeCmd struct {
	Port string `help:"HTTP listen port." default:"8080" env:"WEATHERCORE_PORT"`
}

func (c *ServeCmd) Run(cli *CLI, st *store.Store) error {
	server := api.NewServer(st, c.Port)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return server.Run(ctx)
}

type DaemonCmd struct {
	Schedule     string   `help:"Cron schedule for forecast refresh." default:"*/15 * * * *"`
	HorizonHours int      `help:"Forecast horizon in hours (24 or 120)." default:"24"`
	Stations     []string `help:"Stations to refresh; defaults to the global --station." `
}

func (c *DaemonCmd) Run(cli *CLI, st *store.Store) error {
	stations := c.Stations
	if len(stations) == 0 {
		stations = []string{cli.Station}
	}

	d, err := daemon.New(st, stations, c.Schedule, c.HorizonHours)
	if err != nil {
		return fmt.Errorf("build daemon: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	log.Printf("daemon: scheduling %q for stations %v", c.Schedule, stations)
	d.Run(ctx)
	return nil
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("weathercore"),
		kong.Description("Deterministic weather inference core: observe, forecast, serve."),
		kong.Configuration(dotenv.ENVFileReader),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	kctx.FatalIfErrorf(kctx.Run(&cli, st))
}
