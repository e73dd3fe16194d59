package view

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/pkg/metrics"
)

// DefaultPollInterval is how often a Poller re-reads the order list.
const DefaultPollInterval = 5 * time.Second

// SnapshotFunc returns the current order list for one user.
type SnapshotFunc func(ctx context.Context) []domain.ServiceOrder

// Poller periodically re-reads a snapshot and hands it to a callback. The
// first read happens as soon as Start is called.
type Poller struct {
	interval time.Duration
	snapshot SnapshotFunc
	onUpdate func([]domain.ServiceOrder)
	log      zerolog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPoller creates a Poller. If interval <= 0, DefaultPollInterval is used.
func NewPoller(interval time.Duration, snapshot SnapshotFunc, onUpdate func([]domain.ServiceOrder), log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		snapshot: snapshot,
		onUpdate: onUpdate,
		log:      log,
	}
}

// Start launches the polling goroutine. It stops when ctx is cancelled or
// Stop is called. Calling Start on a running or stopped Poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.run(ctx)
}

// Stop cancels the polling goroutine and waits for it to exit. It is safe to
// call more than once, and before Start.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		if p.cancel == nil {
			// Never started: make any later Start a no-op.
			p.cancel = func() {}
		}
		cancel := p.cancel
		p.mu.Unlock()

		cancel()
	})
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Debug().Msg("poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	started := time.Now()
	p.onUpdate(p.snapshot(ctx))
	metrics.PollDuration.Observe(time.Since(started).Seconds())
}
