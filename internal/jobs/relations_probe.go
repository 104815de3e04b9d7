package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"leximap/internal/metrics"
	"leximap/internal/models"
)

// Pinger checks whether a remote service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RelationsProbe periodically checks that the relation service is reachable.
// It only reports; lexeme requests never consult it.
type RelationsProbe struct {
	target   Pinger
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger

	mu     sync.RWMutex
	status string
}

// NewRelationsProbe creates a new probe.
func NewRelationsProbe(target Pinger, interval, timeout time.Duration, logger *slog.Logger) *RelationsProbe {
	return &RelationsProbe{
		target:   target,
		interval: interval,
		timeout:  timeout,
		log:      logger.With("component", "relations_probe"),
		status:   models.RelationsUnknown,
	}
}

// Start begins the probe loop and blocks until ctx is canceled.
func (p *RelationsProbe) Start(ctx context.Context) {
	p.log.Info("relations probe started", "interval", p.interval)

	// Run immediately on start
	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("relations probe stopped")
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

// Status returns "up", "down" or "unknown" before the first check.
func (p *RelationsProbe) Status() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *RelationsProbe) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status := models.RelationsUp
	if err := p.target.Ping(ctx); err != nil {
		status = models.RelationsDown
		p.log.Warn("relation service unreachable", "error", err)
	}

	p.mu.Lock()
	changed := p.status != status
	p.status = status
	p.mu.Unlock()

	metrics.SetRelationsUp(status == models.RelationsUp)
	if changed {
		p.log.Info("relation service status changed", "status", status)
	}
}
