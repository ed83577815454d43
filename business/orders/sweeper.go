package orders

import (
	"context"
	"time"

	"shirtshop/pkg/logger"
)

// Sweeper periodically expires overdue PENDING_PAYMENT orders. It is an
// explicitly owned background task: callers start it once and stop it during
// shutdown.
type Sweeper struct {
	svc       *OrdersService
	interval  time.Duration
	batchSize int
	stop      chan struct{}
	done      chan struct{}
}

func NewSweeper(svc *OrdersService, interval time.Duration, batchSize int) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Sweeper{
		svc:       svc,
		interval:  interval,
		batchSize: batchSize,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.run()
}

// Stop signals the sweeper and waits for the in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(context.Background())
		}
	}
}

// sweep drains the overdue backlog in bounded batches so a large backlog
// cannot pin the timer goroutine on one pass.
func (s *Sweeper) sweep(ctx context.Context) int {
	total := 0
	for {
		expired, more, err := s.svc.ExpireOverdue(ctx, s.batchSize)
		if err != nil {
			logger.Error("expiry sweep failed", err)
			return total
		}
		total += expired

		// Stop when the backlog is drained, or when a full batch made no
		// progress (every record kept failing its guard).
		if !more || expired == 0 {
			break
		}
	}

	if total > 0 {
		logger.Info("expired overdue orders", "count", total)
	}
	return total
}
