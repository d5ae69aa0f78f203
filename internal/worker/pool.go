package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/qs3c/salon_go_server/internal/pkg/queue"
)

const popTimeout = 5 * time.Second

// Source is where workers take notifications from.
type Source interface {
	Pop(ctx context.Context, timeout time.Duration) (*queue.NotificationMessage, error)
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	source    Source
	processor *Processor
	workers   int
	timeout   time.Duration
}

func NewPool(source Source, processor *Processor, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		source:    source,
		processor: processor,
		workers:   workers,
		timeout:   popTimeout,
	}
}

// Run blocks until ctx is cancelled and every worker has returned.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.loop(ctx, workerID)
		}(i)
	}
	wg.Wait()
}

func (p *Pool) loop(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", workerID)
			return
		default:
		}

		msg, err := p.source.Pop(ctx, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Worker %d: failed to pop notification: %v", workerID, err)
			// back off so a down Redis does not spin the loop
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if msg == nil {
			continue
		}

		if err := p.processor.Process(ctx, msg); err != nil {
			log.Printf("Worker %d: %v", workerID, err)
		}
	}
}
