package main

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/upmon/upmon/internal/checker"
	api "github.com/upmon/upmon/lib-upmon"
)

// RunAgent runs only the checker and delivers batches to a remote upmon
// server over HTTP.
//
// A cycle whose delivery fails is logged and dropped; the next cycle
// starts fresh. There is no retry within a cycle.
func (cmd *UpmonCommand) RunAgent(ctx context.Context) (exitCode int) {
	target, err := url.Parse(cmd.ReportTo)
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "invalid report-to URL: %s\n", err)
		return 2
	}

	client := api.Client{Target: target, Token: cmd.Token}
	c := checker.New(cmd.Targets)

	wg := &sync.WaitGroup{}
	scheduler := cron.New()

	job := cron.FuncJob(func() {
		if _, err := c.RunOnce(ctx, client); err != nil {
			fmt.Fprintf(cmd.ErrStream, "failed to deliver batch: %s\n", err)
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

	fmt.Fprintf(cmd.OutStream, "upmon agent reporting to %s (schedule %s)\n", target, cmd.Schedule)

	<-ctx.Done()
	<-scheduler.Stop().Done()
	wg.Wait()

	return 0
}
