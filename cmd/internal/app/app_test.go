package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, nil, false, nil, nil, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}
	if got := rr.Body.String(); got != "ok\n" {
		t.Fatalf("healthz body=%q", got)
	}
}

func TestReadyz_RequiresDB(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{ReadinessRequireDB: true}, nil, false, nil, nil, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz without db: status=%d want=503", rr.Code)
	}
}

func TestReadyz_InMemoryMode(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, nil, false, nil, nil, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", rr.Code)
	}
}

func TestMetrics_ScrapeAfterRequest(t *testing.T) {
	t.Parallel()

	metrics := NewMetrics()

	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, nil, false, metrics, nil, nil, nil)
	h := metrics.WithHTTP(mux)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz via metrics middleware: status=%d", rr.Code)
	}

	scrape := httptest.NewRecorder()
	mux.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if scrape.Code != http.StatusOK {
		t.Fatalf("metrics scrape status=%d", scrape.Code)
	}

	body := scrape.Body.String()
	if !strings.Contains(body, "getset_http_requests_total") {
		t.Fatalf("scrape missing request counter:\n%s", body)
	}
	if !strings.Contains(body, `pattern="/healthz"`) {
		t.Fatalf("scrape missing healthz pattern label:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("scrape missing go runtime collector output")
	}
}
