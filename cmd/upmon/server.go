package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/upmon/upmon/internal/checker"
	"github.com/upmon/upmon/internal/endpoint"
	"github.com/upmon/upmon/internal/history"
	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

// storeReporter records batches straight into the local store, the way
// the record endpoint would.
type storeReporter struct {
	store *store.Store
}

// Report implements the checker.Reporter interface.
func (r storeReporter) Report(ctx context.Context, batch api.Batch) error {
	return history.RecordBatch(ctx, r.store, batch)
}

// RunServer serves the status API and, when targets are configured, runs
// the check cycles on the configured cadence.
func (cmd *UpmonCommand) RunServer(ctx context.Context, s *store.Store) (exitCode int) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := &sync.WaitGroup{}
	scheduler := cron.New()

	if len(cmd.Targets) > 0 {
		c := checker.New(cmd.Targets)
		reporter := storeReporter{s}

		job := cron.FuncJob(func() {
			if _, err := c.RunOnce(ctx, reporter); err != nil {
				s.ReportInternalError("checker", err.Error())
			} else {
				s.ReportHealthy("checker")
			}
		})

		if cmd.Schedule.NeedKickWhenStart() {
			wg.Add(1)
			go func() {
				job.Run()
				wg.Done()
			}()
		}

		scheduler.Schedule(cmd.Schedule, job)
		scheduler.Start()
		defer scheduler.Stop()
	}

	listen := fmt.Sprintf("0.0.0.0:%d", cmd.ListenPort)
	srv := &http.Server{Addr: listen, Handler: endpoint.New(s, cmd.Token)}

	wg.Add(1)
	go func() {
		<-ctx.Done()

		<-scheduler.Stop().Done()

		if err := srv.Shutdown(context.Background()); err != nil {
			s.ReportInternalError("endpoint", err.Error())
		}
		wg.Done()
	}()

	fmt.Fprintf(cmd.OutStream, "upmon listening on http://%s (schedule %s)\n", listen, cmd.Schedule)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		s.ReportInternalError("endpoint", err.Error())
		exitCode = 1
	}
	cancel()

	wg.Wait()

	return exitCode
}
