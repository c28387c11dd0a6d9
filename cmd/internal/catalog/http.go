package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"getset/cmd/internal/web"
)

const moduleCategory = "[CATEGORY]"

// HTTPHandler exposes the /api/categories endpoints.
type HTTPHandler struct {
	log          *slog.Logger
	svc          *Service
	maxBodyBytes int64
}

// NewHTTPHandler constructs a category HTTP handler.
func NewHTTPHandler(log *slog.Logger, svc *Service, maxBodyBytes int64) *HTTPHandler {
	if log == nil {
		log = slog.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &HTTPHandler{log: log, svc: svc, maxBodyBytes: maxBodyBytes}
}

// Register wires the category routes onto the provided mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /api/categories/create", h.handleCreate)
	mux.HandleFunc("GET /api/categories", h.handleList)
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (h *HTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := web.DecodeFields(w, r, h.maxBodyBytes)
	if err != nil {
		web.WriteError(h.log, w, moduleCategory,
			web.NewError(http.StatusBadRequest, moduleCategory, "Invalid request body").WithCause(err))
		return
	}

	cat, err := h.svc.Create(r.Context(), fields.Get("name"), fields.Get("description"), time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			web.WriteError(h.log, w, moduleCategory,
				web.NewError(http.StatusBadRequest, moduleCategory, "Name and description are required"))
		default:
			if ve, ok := IsValidation(err); ok {
				web.WriteError(h.log, w, moduleCategory,
					web.ValidationError(moduleCategory, "Validation failed", ve.Violations))
				return
			}
			web.WriteError(h.log, w, moduleCategory, err)
		}
		return
	}

	web.Respond(w, http.StatusCreated, moduleCategory, "Category created successfully!",
		map[string]any{"category": toCategoryResponse(cat)})
}

func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		web.WriteError(h.log, w, moduleCategory, err)
		return
	}

	out := make([]categoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	web.Respond(w, http.StatusOK, moduleCategory, "", out)
}
