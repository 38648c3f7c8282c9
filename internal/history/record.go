package history

import (
	"context"
	"fmt"

	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

// RecordBatch applies one check batch to the store.
//
// It overwrites the latest snapshot wholesale, then folds a result into
// the day history of EVERY monitored service: the batch's own result when
// present, or a synthetic unknown when the checker omitted the service.
//
// Each service's history is an isolated unit of work. A failure reading
// or writing one history is reported to the store's error surface and
// does not abort the remaining services; there is no rollback of the
// snapshot or of histories already written. RecordBatch only returns an
// error when the snapshot write itself fails.
func RecordBatch(ctx context.Context, s *store.Store, batch api.Batch) error {
	if err := s.PutLatest(ctx, batch.Snapshot()); err != nil {
		return fmt.Errorf("failed to record latest snapshot: %w", err)
	}

	today := batch.Date()

	for _, service := range api.Services() {
		scope := "history:" + service.String()

		incoming, ok := batch.Checks[service]
		if !ok {
			incoming = api.CheckResult{Status: api.StatusUnknown}
		}

		stored, err := s.History(ctx, service)
		if err != nil {
			s.ReportInternalError(scope, err.Error())
			continue
		}

		updated, _ := Aggregate(stored, today, incoming)

		if err := s.PutHistory(ctx, service, updated); err != nil {
			s.ReportInternalError(scope, err.Error())
			continue
		}

		s.ReportHealthy(scope)
	}

	return nil
}
