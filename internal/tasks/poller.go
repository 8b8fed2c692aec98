package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/duskthistle/swipereel/internal/queue"
	"github.com/duskthistle/swipereel/internal/services"
)

// Poller periodically fetches snapshots from the backend and reconciles them
// into the queue. It is owned by the review session: started when review
// begins, stopped by cancelling the context passed to Run.
type Poller struct {
	service    services.Service
	queue      *queue.ReviewQueue
	reconciler *Reconciler
	interval   time.Duration
	logger     *log.Logger
	reports    chan ReconcileReport
}

// NewPoller creates a poller emitting one report per reconciliation pass.
func NewPoller(svc services.Service, q *queue.ReviewQueue, rec *Reconciler, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		service:    svc,
		queue:      q,
		reconciler: rec,
		interval:   interval,
		logger:     logger,
		reports:    make(chan ReconcileReport, 16),
	}
}

// Reports returns the channel reconciliation reports are delivered on. The
// channel closes when Run returns.
func (p *Poller) Reports() <-chan ReconcileReport {
	return p.reports
}

// Run polls until the context is cancelled. One fetch per tick; fetch
// failures are logged and the next tick retries. A response that resolves
// after cancellation is discarded without touching the queue.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.reports)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	snapshots, err := p.service.FetchSnapshots(ctx)
	if err != nil {
		p.logger.Warn("snapshot fetch failed", "error", err)
		return
	}
	if ctx.Err() != nil {
		// Session tore down while the request was in flight.
		return
	}

	report := p.reconciler.Apply(p.queue, snapshots)
	if report.Dropped > 0 {
		p.logger.Warn("reconciliation dropped anomalous snapshots", "count", report.Dropped)
	}

	select {
	case p.reports <- report:
	default:
		// Consumer is behind; the next report supersedes this one anyway.
	}
}
