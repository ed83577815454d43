package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shirtshop/domain"
)

func seedOverdue(f *fixture, n int, status domain.OrderStatus) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("overdue-%s-%d", status, i)
		f.orders.orders[id] = domain.Order{
			ID:        id,
			UserID:    "user-1",
			Status:    status,
			CreatedAt: time.Now().Add(-time.Hour),
			ExpiresAt: time.Now().Add(-30 * time.Minute),
		}
	}
}

func TestSweepDrainsBacklogInBatches(t *testing.T) {
	f := newFixture()
	seedOverdue(f, 25, domain.StatusPendingPayment)

	sweeper := NewSweeper(f.svc, time.Hour, 10)
	total := sweeper.sweep(context.Background())

	if total != 25 {
		t.Fatalf("sweep expired %d orders, want 25", total)
	}
	for id, o := range f.orders.orders {
		if o.Status != domain.StatusExpired {
			t.Errorf("order %s status = %s, want EXPIRED", id, o.Status)
		}
	}
	if f.inventory.debits != 0 || f.inventory.credits != 0 {
		t.Errorf("expiry must not touch stock: debits=%d credits=%d", f.inventory.debits, f.inventory.credits)
	}
}

func TestSweepLeavesSlipUploadedAlone(t *testing.T) {
	f := newFixture()
	seedOverdue(f, 3, domain.StatusPendingPayment)
	seedOverdue(f, 2, domain.StatusSlipUploaded)

	sweeper := NewSweeper(f.svc, time.Hour, 10)
	total := sweeper.sweep(context.Background())

	if total != 3 {
		t.Fatalf("sweep expired %d orders, want 3", total)
	}
	for id, o := range f.orders.orders {
		if o.Status == domain.StatusSlipUploaded {
			continue
		}
		if o.Status != domain.StatusExpired {
			t.Errorf("order %s status = %s, want EXPIRED", id, o.Status)
		}
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture()
	seedOverdue(f, 5, domain.StatusPendingPayment)

	sweeper := NewSweeper(f.svc, time.Hour, 10)
	if total := sweeper.sweep(context.Background()); total != 5 {
		t.Fatalf("first sweep expired %d, want 5", total)
	}
	if total := sweeper.sweep(context.Background()); total != 0 {
		t.Fatalf("second sweep expired %d, want 0", total)
	}
}

func TestSweeperStartStop(t *testing.T) {
	f := newFixture()
	sweeper := NewSweeper(f.svc, 5*time.Millisecond, 10)

	seedOverdue(f, 1, domain.StatusPendingPayment)
	sweeper.Start()
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}

	for id, o := range f.orders.orders {
		if o.Status != domain.StatusExpired {
			t.Errorf("order %s status = %s, want EXPIRED", id, o.Status)
		}
	}
}
