package checker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/upmon/upmon/internal/scheme"
	api "github.com/upmon/upmon/lib-upmon"
)

// Target pairs a monitored service with its prober.
type Target struct {
	Service api.ServiceID
	Prober  scheme.Prober
}

// Reporter takes the batch a check cycle produced.
//
// The server records batches straight into its store; the agent mode
// delivers them over HTTP with upmon.Client, which satisfies this
// interface too.
type Reporter interface {
	Report(ctx context.Context, batch api.Batch) error
}

// Checker probes the monitored services and assembles one batch per
// cycle.
type Checker struct {
	targets []Target
}

// New creates a Checker. Targets keep the order they are given in.
func New(targets []Target) *Checker {
	return &Checker{targets: targets}
}

// Targets returns the monitored targets.
func (c *Checker) Targets() []Target {
	return c.targets
}

// RunCycle probes every target in parallel and returns the batch.
//
// The batch carries one shared timestamp, taken when the cycle starts.
// Services without a target are simply absent from the batch; the server
// synthesizes an unknown result for them.
func (c *Checker) RunCycle(ctx context.Context) api.Batch {
	cycle := uuid.NewString()

	batch := api.Batch{
		Checks:    make(map[api.ServiceID]api.CheckResult, len(c.targets)),
		Timestamp: time.Now().UnixMilli(),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, t := range c.targets {
		wg.Add(1)
		go func(t Target) {
			defer wg.Done()

			result := t.Prober.Probe(ctx)

			mu.Lock()
			batch.Checks[t.Service] = result
			mu.Unlock()

			if result.ResponseTime != nil {
				log.Printf("check %s: %s %s %s %dms", cycle, t.Service, t.Prober.Target(), result.Status, *result.ResponseTime)
			} else {
				log.Printf("check %s: %s %s %s", cycle, t.Service, t.Prober.Target(), result.Status)
			}
		}(t)
	}
	wg.Wait()

	return batch
}

// RunOnce runs one cycle and hands the batch to the reporter.
func (c *Checker) RunOnce(ctx context.Context, r Reporter) (api.Batch, error) {
	batch := c.RunCycle(ctx)
	return batch, r.Report(ctx, batch)
}
