package cron

import (
	"context"
	"log"
	"sync"
	"time"
)

// CycleResetter rolls over every subscription whose billing cycle has ended.
type CycleResetter interface {
	ResetExpiredCycles(ctx context.Context) (int, error)
}

type Service struct {
	resetter CycleResetter
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService runs the cycle reset every interval minutes (at least one).
func NewService(resetter CycleResetter, intervalMinutes int) *Service {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}
	return &Service{
		resetter: resetter,
		interval: time.Duration(intervalMinutes) * time.Minute,
		stopChan: make(chan struct{}),
	}
}

// Start runs one reset right away, then keeps resetting on the interval.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.runCycleReset()
	log.Printf("Cron service started (billing cycle reset every %s)", s.interval)
}

// Stop ends the loop and waits for an in-flight reset to finish.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	log.Println("Cron service stopped")
}

func (s *Service) runCycleReset() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.resetCycles()
	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.resetCycles()
		}
	}
}

func (s *Service) resetCycles() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	n, err := s.resetter.ResetExpiredCycles(ctx)
	if err != nil {
		log.Printf("Failed to reset billing cycles: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Billing cycle reset completed: %d subscriptions", n)
	}
}

// RunNow resets expired cycles once, outside the loop.
func (s *Service) RunNow(ctx context.Context) (int, error) {
	log.Println("Manual billing cycle reset triggered...")
	return s.resetter.ResetExpiredCycles(ctx)
}
