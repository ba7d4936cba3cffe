package workers

import (
	"context"
	stderrors "errors"
	"html/template"
	"liftotron/contract"
	"liftotron/domain"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultInspectLimit = 14
	shutdownTimeout     = 5 * time.Second
)

var inspectTemplate = template.Must(template.New("attendance").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Attendance</title></head>
<body>
<h1>Last {{len .Records}} days</h1>
<table border="1" cellpadding="4">
<tr><th>Day</th><th>Closed at</th><th>Greeted</th><th>Missing</th></tr>
{{range .Records}}<tr><td>{{.Day}}</td><td>{{.ClosedAt.Format "2006-01-02 15:04:05"}}</td><td>{{join .Greeted ", "}}</td><td>{{join .Missing ", "}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type inspectPage struct {
	Records []domain.AttendanceRecord
}

// HTTPServerWorker serves the Prometheus metrics and a read-only view of the attendance journal.
type HTTPServerWorker struct {
	log     *slog.Logger
	addr    string
	journal contract.AttendanceJournal
}

func NewHTTPServerWorker(log *slog.Logger, addr string, journal contract.AttendanceJournal) *HTTPServerWorker {
	return &HTTPServerWorker{log: log, addr: addr, journal: journal}
}

func (w *HTTPServerWorker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/attendance", w.inspect)
	return mux
}

func (w *HTTPServerWorker) inspect(rw http.ResponseWriter, r *http.Request) {
	limit := defaultInspectLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(rw, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := w.journal.List(limit)
	if err != nil {
		w.log.Error("Failed to list attendance", "error", err)
		http.Error(rw, "journal unavailable", http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := inspectTemplate.Execute(rw, inspectPage{Records: records}); err != nil {
		w.log.Error("Failed to render attendance", "error", err)
	}
}

func (w *HTTPServerWorker) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              w.addr,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting HTTP server", "address", w.addr)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}
