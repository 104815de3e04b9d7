package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"leximap/internal/models"
)

type fakePinger struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	if f.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func newTestProbe(target Pinger, interval time.Duration) *RelationsProbe {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRelationsProbe(target, interval, time.Second, logger)
}

func TestRelationsProbe_StatusTransitions(t *testing.T) {
	target := &fakePinger{}
	p := newTestProbe(target, time.Hour)

	if got := p.Status(); got != models.RelationsUnknown {
		t.Errorf("initial Status() = %q, want %q", got, models.RelationsUnknown)
	}

	p.check(context.Background())
	if got := p.Status(); got != models.RelationsUp {
		t.Errorf("Status() = %q, want %q", got, models.RelationsUp)
	}

	target.fail.Store(true)
	p.check(context.Background())
	if got := p.Status(); got != models.RelationsDown {
		t.Errorf("Status() = %q, want %q", got, models.RelationsDown)
	}
}

func TestRelationsProbe_StartStops(t *testing.T) {
	target := &fakePinger{}
	p := newTestProbe(target, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for target.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("probe ran %d times, want at least 3", target.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}
