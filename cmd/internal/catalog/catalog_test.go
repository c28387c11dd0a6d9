package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"getset/cmd/internal/web"
)

func newTestService() *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, NewMemoryStore())
}

func TestCreate_Valid(t *testing.T) {
	svc := newTestService()

	cat, err := svc.Create(context.Background(), "  Electronics  ", "Phones and gadgets", time.Time{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.Name != "Electronics" {
		t.Fatalf("name not trimmed: %q", cat.Name)
	}
	if cat.ID == "" {
		t.Fatalf("missing id")
	}
}

func TestCreate_MissingFields(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Create(context.Background(), "", "desc", time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "Books", "", time.Time{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreate_CollectsViolations(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), "4K", "x", time.Time{})
	ve, ok := IsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ve.Violations)
	}
}

func TestHTTPCreate(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHTTPHandler(log, newTestService(), 1<<20)

	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/categories/create",
		strings.NewReader(`{"name":"Electronics","description":"Phones and gadgets"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	var env web.Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Message != "Category created successfully!" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestHTTPCreate_MissingFields(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHTTPHandler(log, newTestService(), 1<<20)

	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/categories/create",
		strings.NewReader(`{"name":"Electronics"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	var env web.Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Message != "Name and description are required" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestHTTPList(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := newTestService()
	if _, err := svc.Create(context.Background(), "Electronics", "Phones", time.Time{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHTTPHandler(log, svc, 1<<20)

	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var env web.Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	items, ok := env.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 category, got %v", env.Data)
	}
}
