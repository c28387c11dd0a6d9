package web

import (
	"errors"
	"log/slog"
	"net/http"
)

// Error is the typed failure every layer raises and the boundary translates.
// Status drives the HTTP code, Errors carries field-level violation lists.
type Error struct {
	Status  int
	Module  string
	Message string
	Errors  []string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewError constructs a typed error.
func NewError(status int, module, message string) *Error {
	return &Error{Status: status, Module: module, Message: message}
}

// WithErrors attaches a field-violation list (kept in caller order).
func (e *Error) WithErrors(errs []string) *Error {
	e.Errors = errs
	return e
}

// WithCause attaches the underlying error for server-side logs; it is never
// sent to clients.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// ValidationError builds the standard 400 with all collected violations.
func ValidationError(module, message string, errs []string) *Error {
	return NewError(http.StatusBadRequest, module, message).WithErrors(errs)
}

// WriteError is the single error-translating boundary. Typed errors map to
// their envelope; anything else is logged with detail server-side and
// downgraded to a generic 500 so internals never leak.
func WriteError(log *slog.Logger, w http.ResponseWriter, module string, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Module == "" {
			apiErr.Module = module
		}
		if apiErr.Status >= 500 && log != nil {
			log.Error("request.fail", "module", apiErr.Module, "err", err)
		}
		writeJSON(w, apiErr.Status, Envelope{
			Success:    false,
			StatusCode: apiErr.Status,
			Module:     apiErr.Module,
			Message:    apiErr.Message,
			Errors:     apiErr.Errors,
		})
		return
	}

	if log != nil {
		log.Error("request.fail.unexpected", "module", module, "err", err)
	}
	writeJSON(w, http.StatusInternalServerError, Envelope{
		Success:    false,
		StatusCode: http.StatusInternalServerError,
		Module:     module,
		Message:    "Internal server error",
	})
}
