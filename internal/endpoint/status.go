package endpoint

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/upmon/upmon/internal/history"
	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// MakeReport assembles the status document: every monitored service's
// history plus the latest snapshot. Absent keys read as empty values,
// never as errors.
func MakeReport(ctx context.Context, s *store.Store) (api.Report, error) {
	report := api.Report{
		History: make(map[api.ServiceID][]api.HistoryEntry, len(api.Services())),
	}

	for _, service := range api.Services() {
		h, err := s.History(ctx, service)
		if err != nil {
			return api.Report{}, err
		}
		if h == nil {
			h = []api.HistoryEntry{}
		}
		report.History[service] = h
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		return api.Report{}, err
	}
	report.Latest = latest

	return report, nil
}

// StatusEndpoint is the http.HandlerFunc for the /status resource.
//
// GET reads the status document, POST records a check batch, OPTIONS
// answers the CORS preflight. Every other method is a 405.
func StatusEndpoint(s *store.Store, token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)

		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			getStatus(s, w, r)
		case http.MethodPost:
			postStatus(s, token, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// StatusJSONEndpoint is a read-only alias of the /status resource.
func StatusJSONEndpoint(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)

		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		getStatus(s, w, r)
	}
}

func getStatus(s *store.Store, w http.ResponseWriter, r *http.Request) {
	report, err := MakeReport(r.Context(), s)
	if err != nil {
		s.ReportInternalError("endpoint:status", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to read status")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.ReportInternalError("endpoint:status", err.Error())
	}
}

func postStatus(s *store.Store, token string, w http.ResponseWriter, r *http.Request) {
	if !authorized(r, token) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var batch api.Batch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to parse request")
		return
	}

	if err := history.RecordBatch(r.Context(), s, batch); err != nil {
		s.ReportInternalError("endpoint:record", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to record batch")
		return
	}
	s.ReportHealthy("endpoint:record")

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	json.NewEncoder(w).Encode(api.Ack{Success: true, Timestamp: batch.Timestamp})
}
