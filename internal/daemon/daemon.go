// Package daemon schedules periodic core.Forecast re-runs for a fixed
// list of stations read from the store, the way icodeforyou-solarplant-go's
// task.Tasks schedules its own periodic jobs with robfig/cron.
package daemon

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/lox/wandiweather/internal/core"
	"github.com/lox/wandiweather/internal/metrics"
	"github.com/lox/wandiweather/internal/store"
)

// Daemon re-runs Forecast for a fixed set of stations on a cron schedule,
// persisting nothing itself (Forecast reads state but never mutates it).
type Daemon struct {
	cron         *cron.Cron
	store        *store.Store
	stationIDs   []string
	horizonHours int
}

// New builds a Daemon that forecasts the given stations at schedule
// (standard 5-field cron syntax, e.g. "*/15 * * * *"), requesting
// horizonHours (24 or 120) each run.
func New(st *store.Store, stationIDs []string, schedule string, horizonHours int) (*Daemon, error) {
	d := &Daemon{
		cron:         cron.New(),
		store:        st,
		stationIDs:   stationIDs,
		horizonHours: horizonHours,
	}
	if _, err := d.cron.AddFunc(schedule, d.tick); err != nil {
		return nil, err
	}
	return d, nil
}

// Run starts the cron scheduler and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) {
	d.cron.Start()
	<-ctx.Done()
	stopCtx := d.cron.Stop()
	<-stopCtx.Done()
}

func (d *Daemon) tick() {
	for _, stationID := range d.stationIDs {
		d.forecastOne(stationID)
	}
}

func (d *Daemon) forecastOne(stationID string) {
	state, ok, err := d.store.LoadState(stationID)
	if err != nil {
		log.Printf("daemon: load state for %s: %v", stationID, err)
		return
	}
	if !ok {
		log.Printf("daemon: no observations yet for %s, skipping forecast", stationID)
		return
	}

	_, err = core.Forecast(state, d.horizonHours)
	if err != nil {
		metrics.ForecastCallsTotal.WithLabelValues(stationID, "error").Inc()
		log.Printf("daemon: forecast %s: %v", stationID, err)
		return
	}
	metrics.ForecastCallsTotal.WithLabelValues(stationID, "ok").Inc()
	log.Printf("daemon: refreshed forecast for %s", stationID)
}
