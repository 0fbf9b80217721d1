package status

import (
	"context"
	"sync"
	"time"

	"github.com/litlfred/sgex/pkg/log"
)

// DefaultPollInterval matches the status panel refresh cadence
const DefaultPollInterval = 5 * time.Second

// Poller invokes a tick function on an interval. At most one tick is
// in flight at a time: when a tick is still running as the next timer
// fires, that firing is skipped rather than stacked. Stop (or context
// cancellation) releases the timer.
type Poller struct {
	interval time.Duration
	tick     func(ctx context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewPoller creates a poller calling tick every interval. A zero or
// negative interval falls back to DefaultPollInterval.
func NewPoller(interval time.Duration, tick func(ctx context.Context)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval, tick: tick}
}

// Start begins polling until ctx is cancelled or Stop is called. The
// first tick fires immediately. Starting an already-running poller is
// a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx)
}

// Stop halts polling and waits for an in-flight tick to finish
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.running = false
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	var inFlight sync.WaitGroup
	busy := make(chan struct{}, 1)

	run := func() {
		select {
		case busy <- struct{}{}:
		default:
			// Previous tick still running; skip this firing
			log.Debug("poll tick skipped, previous still in flight")
			return
		}
		inFlight.Add(1)
		go func() {
			defer inFlight.Done()
			defer func() { <-busy }()
			p.tick(ctx)
		}()
	}

	run()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			inFlight.Wait()
			return
		case <-ticker.C:
			run()
		}
	}
}
