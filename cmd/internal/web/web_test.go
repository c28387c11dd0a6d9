package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRespond_SuccessEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Respond(rr, http.StatusCreated, "[USER-REGISTRATION]", "Account created successfully! You can now log in.", map[string]string{"id": "x"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.StatusCode != 201 || env.Module == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestWriteError_TypedError(t *testing.T) {
	rr := httptest.NewRecorder()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := ValidationError("[USER-REGISTRATION]", "Validation failed", []string{"first", "second"})
	WriteError(log, rr, "[fallback]", err)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Success {
		t.Fatalf("expected success=false")
	}
	if len(env.Errors) != 2 || env.Errors[0] != "first" {
		t.Fatalf("errors not preserved in order: %v", env.Errors)
	}
}

func TestWriteError_UnexpectedErrorIsGeneric500(t *testing.T) {
	rr := httptest.NewRecorder()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	WriteError(log, rr, "[AUTH]", errors.New("pq: connection reset by peer"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if strings.Contains(env.Message, "pq:") {
		t.Fatalf("internal detail leaked: %q", env.Message)
	}
	if env.Message != "Internal server error" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestDecodeFields_JSON(t *testing.T) {
	body := `{"name":"Alice","isDefault":true,"age":30}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	f, err := DecodeFields(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("DecodeFields: %v", err)
	}
	if f.Get("name") != "Alice" || !f.Bool("isDefault") || f.Get("age") != "30" {
		t.Fatalf("unexpected fields: %v", f)
	}
}

func TestDecodeFields_Form(t *testing.T) {
	body := "email=alice%40example.com&password=secret123"
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := DecodeFields(httptest.NewRecorder(), req, 1<<20)
	if err != nil {
		t.Fatalf("DecodeFields: %v", err)
	}
	if f.Get("email") != "alice@example.com" || f.Get("password") != "secret123" {
		t.Fatalf("unexpected fields: %v", f)
	}
}

func TestDecodeFields_TrailingGarbageRejected(t *testing.T) {
	body := `{"a":"b"} trailing`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if _, err := DecodeFields(httptest.NewRecorder(), req, 1<<20); err == nil {
		t.Fatalf("expected error for trailing data")
	}
}
