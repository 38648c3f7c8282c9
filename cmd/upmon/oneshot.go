package main

import (
	"context"
	"fmt"

	"github.com/upmon/upmon/internal/checker"
	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

// RunOneshot checks every configured target once, records the batch, and
// prints the per-service outcome.
//
// Exit code 0 means every monitored service came back operational;
// anything else is 1.
func (cmd *UpmonCommand) RunOneshot(ctx context.Context, s *store.Store) (exitCode int) {
	c := checker.New(cmd.Targets)

	batch, err := c.RunOnce(ctx, storeReporter{s})
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to record check results: %s\n", err)
		return 1
	}

	allOperational := true
	for _, service := range api.Services() {
		check, ok := batch.Checks[service]
		if !ok {
			check = api.CheckResult{Status: api.StatusUnknown}
		}
		if check.Status != api.StatusOperational {
			allOperational = false
		}

		if check.ResponseTime != nil {
			fmt.Fprintf(cmd.OutStream, "%-10s %-12s %dms\n", service, check.Status, *check.ResponseTime)
		} else {
			fmt.Fprintf(cmd.OutStream, "%-10s %-12s\n", service, check.Status)
		}
	}

	if !allOperational {
		return 1
	}
	return 0
}
