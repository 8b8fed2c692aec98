package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/queue"
	"github.com/duskthistle/swipereel/internal/repositories"
	"github.com/duskthistle/swipereel/internal/shared"
	"github.com/duskthistle/swipereel/internal/tasks"
	"github.com/duskthistle/swipereel/internal/ui"
	"github.com/urfave/cli/v3"
)

// Review launches the interactive review TUI.
func (r *Runner) Review(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/swipereel-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var recorder tasks.DecisionRecorder
	if db, dbErr := r.openDatabase(); dbErr != nil {
		fileLogger.Warn("decision history disabled", "error", dbErr)
	} else {
		defer db.Close()
		recorder = repositories.NewHistoryRepository(db)
	}

	q := queue.New()
	if err := r.seedQueue(ctx, q); err != nil {
		fileLogger.Warn("initial fetch failed, starting with an empty queue", "error", err)
	}

	dispatcher := tasks.NewDispatcher(tasks.DispatcherOpts{
		Queue:    q,
		Service:  r.service,
		Recorder: recorder,
		Upload:   r.config.Upload,
		Logger:   fileLogger,
	})
	reconciler := tasks.NewReconciler(fileLogger)
	poller := tasks.NewPoller(r.service, q, reconciler, r.config.Backend.PollIntervalDuration(), fileLogger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go poller.Run(runCtx)

	model := ui.NewModel(runCtx, ui.ModelOpts{
		Queue:      q,
		Dispatcher: dispatcher,
		Poller:     poller,
		Service:    r.service,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// seedQueue fills the review queue from the backend's current snapshot set.
func (r *Runner) seedQueue(ctx context.Context, q *queue.ReviewQueue) error {
	snapshots, err := r.service.FetchSnapshots(ctx)
	if err != nil {
		return err
	}
	for _, snap := range snapshots {
		if v, ok := videoFromSnapshot(snap); ok {
			q.Enqueue(v)
		}
	}
	return nil
}

// videoFromSnapshot builds a reviewable video from a server snapshot. Videos
// already in a terminal state have nothing left to decide and are skipped.
func videoFromSnapshot(snap models.Snapshot) (models.Video, bool) {
	state, ok := models.ParseState(string(snap.State))
	if !ok || state.Terminal() {
		return models.Video{}, false
	}

	v := models.Video{
		ID:        models.ConfirmedID(snap.ID),
		State:     state,
		CreatedAt: time.Now(),
	}
	if snap.Title != nil {
		v.Title = *snap.Title
	}
	if snap.SourceURL != nil {
		v.SourceURL = *snap.SourceURL
	}
	if snap.HasSubtitles != nil {
		v.HasSubtitles = *snap.HasSubtitles
	}
	if snap.Subtitles != nil {
		v.Subtitles = *snap.Subtitles
	}
	return v, true
}
