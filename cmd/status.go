package main

import (
	"context"
	"fmt"

	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/repositories"
	"github.com/duskthistle/swipereel/internal/shared"
	"github.com/urfave/cli/v3"
)

// statusReport is the aggregate view printed by the status command.
type statusReport struct {
	Backend   string         `json:"backend"`
	Healthy   bool           `json:"healthy"`
	States    map[string]int `json:"states,omitempty"`
	Kept      int            `json:"kept"`
	Discarded int            `json:"discarded"`
}

// Status reports backend health, pipeline state counts, and the local
// decision tally.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	report := statusReport{Backend: r.service.Name()}

	if err := r.service.Health(ctx); err != nil {
		r.logger.Warn("health check failed", "error", err)
	} else {
		report.Healthy = true
	}

	if report.Healthy {
		snapshots, err := r.service.FetchSnapshots(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch snapshots", "error", err)
		} else {
			report.States = make(map[string]int)
			for _, snap := range snapshots {
				if state, ok := models.ParseState(string(snap.State)); ok {
					report.States[string(state)]++
				}
			}
		}
	}

	if db, err := r.openDatabase(); err != nil {
		r.logger.Debug("decision history unavailable", "error", err)
	} else {
		kept, discarded, countErr := repositories.NewHistoryRepository(db).Counts()
		db.Close()
		if countErr != nil {
			r.logger.Debug("failed to count decisions", "error", countErr)
		} else {
			report.Kept = kept
			report.Discarded = discarded
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}

	r.writePlainHeader("swipereel status")
	if report.Healthy {
		r.writePlain("backend: %s (healthy)\n", report.Backend)
	} else {
		r.writePlain("backend: %s (unreachable)\n", report.Backend)
	}
	for _, state := range models.AllStates() {
		if count := report.States[string(state)]; count > 0 {
			r.writePlain("  %-18s %d\n", state, count)
		}
	}
	r.writePlainln("decisions: %d kept, %d discarded", report.Kept, report.Discarded)
	return nil
}
