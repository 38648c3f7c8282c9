package endpoint

import (
	_ "embed"
	"fmt"
	htmlTemplate "html/template"
	"net/http"
	textTemplate "text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

//go:embed templates/status.html
var statusHTMLTemplate string

//go:embed templates/status.txt
var statusTextTemplate string

var templateFuncs = map[string]interface{}{
	"since": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return humanize.Time(t)
	},
	"latency": func(ms *int64) string {
		if ms == nil {
			return "-"
		}
		return fmt.Sprintf("%dms", *ms)
	},
	"day_mark": func(s api.DayStatus) string {
		switch s {
		case api.DayDown:
			return "X"
		case api.DayPartial:
			return "!"
		default:
			return "O"
		}
	},
}

type statusPageService struct {
	Service api.ServiceID
	Latest  api.CheckResult
	Checked bool
	History []api.HistoryEntry
}

type statusPage struct {
	Services  []statusPageService
	CheckedAt time.Time
}

func makeStatusPage(report api.Report) statusPage {
	page := statusPage{}

	if report.Latest.Timestamp != 0 {
		page.CheckedAt = time.UnixMilli(report.Latest.Timestamp).UTC()
	}

	for _, service := range api.Services() {
		latest, ok := report.Latest.Checks[service]
		page.Services = append(page.Services, statusPageService{
			Service: service,
			Latest:  latest,
			Checked: ok,
			History: report.History[service],
		})
	}

	return page
}

// StatusHTMLEndpoint is the http.HandlerFunc for the /status.html page.
func StatusHTMLEndpoint(s *store.Store) http.HandlerFunc {
	tmpl := htmlTemplate.Must(htmlTemplate.New("status.html").Funcs(templateFuncs).Parse(statusHTMLTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		report, err := MakeReport(r.Context(), s)
		if err != nil {
			s.ReportInternalError("endpoint:status.html", err.Error())
			http.Error(w, "failed to read status", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		handleError(s, "status.html", tmpl.Execute(w, makeStatusPage(report)))
	}
}

// StatusTextEndpoint is the http.HandlerFunc for the /status.txt page.
func StatusTextEndpoint(s *store.Store) http.HandlerFunc {
	tmpl := textTemplate.Must(textTemplate.New("status.txt").Funcs(templateFuncs).Parse(statusTextTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		report, err := MakeReport(r.Context(), s)
		if err != nil {
			s.ReportInternalError("endpoint:status.txt", err.Error())
			http.Error(w, "failed to read status", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
		handleError(s, "status.txt", tmpl.Execute(w, makeStatusPage(report)))
	}
}

func handleError(s *store.Store, scope string, err error) {
	if err != nil {
		s.ReportInternalError("endpoint:"+scope, err.Error())
	}
}
