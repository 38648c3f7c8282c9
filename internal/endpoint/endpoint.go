package endpoint

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/upmon/upmon/internal/store"
)

// New builds the HTTP surface of upmon.
//
// token is the shared-secret bearer token for the record endpoint; an
// empty token runs the write path in open mode. That is an intentional
// escape hatch for local use, not a security guarantee.
func New(s *store.Store, token string) http.Handler {
	m := http.NewServeMux()

	m.HandleFunc("/status", StatusEndpoint(s, token))
	m.HandleFunc("/status.json", StatusJSONEndpoint(s))
	m.HandleFunc("/status.html", StatusHTMLEndpoint(s))
	m.HandleFunc("/status.txt", StatusTextEndpoint(s))
	m.HandleFunc("/healthz", HealthzEndpoint(s))

	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/status.html", http.StatusFound)
		} else {
			http.NotFound(w, r)
		}
	})

	return gziphandler.GzipHandler(WithAccessLog(WithRecovery(m)))
}
