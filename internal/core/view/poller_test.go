package view

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/agencyos/order-desk/internal/core/domain"
)

func seedSnapshot(reads *atomic.Int32) SnapshotFunc {
	return func(context.Context) []domain.ServiceOrder {
		reads.Add(1)
		return domain.SeedOrders(now)
	}
}

func TestPoller_FirstReadIsImmediate(t *testing.T) {
	defer goleak.VerifyNone(t)

	var reads atomic.Int32
	updates := make(chan int, 16)
	p := NewPoller(time.Hour, seedSnapshot(&reads), func(o []domain.ServiceOrder) { updates <- len(o) }, zerolog.Nop())

	p.Start(context.Background())
	select {
	case n := <-updates:
		if n != 3 {
			t.Fatalf("expected a 3-order snapshot, got %d", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}
	p.Stop()

	if got := reads.Load(); got != 1 {
		t.Fatalf("expected exactly one read with an hour interval, got %d", got)
	}
}

func TestPoller_RefreshesOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	var reads atomic.Int32
	updates := make(chan struct{}, 64)
	p := NewPoller(5*time.Millisecond, seedSnapshot(&reads), func([]domain.ServiceOrder) {
		select {
		case updates <- struct{}{}:
		default:
		}
	}, zerolog.Nop())

	p.Start(context.Background())
	for i := 0; i < 3; i++ {
		select {
		case <-updates:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d refreshes observed", i)
		}
	}
	p.Stop()

	after := reads.Load()
	time.Sleep(20 * time.Millisecond)
	if reads.Load() != after {
		t.Fatal("poller kept reading after Stop")
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	var reads atomic.Int32
	p := NewPoller(time.Millisecond, seedSnapshot(&reads), func([]domain.ServiceOrder) {}, zerolog.Nop())

	p.Start(context.Background())
	p.Stop()
	p.Stop()
}

func TestPoller_StopBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	var reads atomic.Int32
	p := NewPoller(time.Millisecond, seedSnapshot(&reads), func([]domain.ServiceOrder) {}, zerolog.Nop())

	p.Stop()
	p.Start(context.Background())
	p.Stop()

	if reads.Load() != 0 {
		t.Fatal("a stopped poller must not start reading")
	}
}

func TestPoller_ContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	var reads atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(time.Millisecond, seedSnapshot(&reads), func([]domain.ServiceOrder) {}, zerolog.Nop())

	p.Start(ctx)
	cancel()
	p.Stop()
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(0, nil, nil, zerolog.Nop())
	if p.interval != DefaultPollInterval {
		t.Fatalf("expected %s, got %s", DefaultPollInterval, p.interval)
	}
}
