// Package addressapi exposes the authenticated /api/addresses endpoints.
package addressapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"getset/cmd/identity"
	"getset/cmd/internal/address"
	authapi "getset/cmd/internal/auth/api"
	"getset/cmd/internal/web"
)

const moduleAddress = "[ADDRESS]"

// Handler wires the /api/addresses endpoints to the address service. Every
// route runs behind the auth middleware.
type Handler struct {
	log          *slog.Logger
	svc          *address.Service
	auth         *authapi.Handler
	maxBodyBytes int64
}

// NewHandler constructs an address API handler.
func NewHandler(log *slog.Logger, svc *address.Service, auth *authapi.Handler, maxBodyBytes int64) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{log: log, svc: svc, auth: auth, maxBodyBytes: maxBodyBytes}
}

// Register wires the address routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /api/addresses/create", h.auth.RequireAccount(h.handleCreate))
	mux.HandleFunc("GET /api/addresses", h.auth.RequireAccount(h.handleList))
	mux.HandleFunc("PATCH /api/addresses/{addressId}", h.auth.RequireAccount(h.handleEdit))
	mux.HandleFunc("DELETE /api/addresses/{addressId}", h.auth.RequireAccount(h.handleDelete))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request, account identity.Account) {
	in, err := h.decodeInput(w, r)
	if err != nil {
		web.WriteError(h.log, w, moduleAddress,
			web.NewError(http.StatusBadRequest, moduleAddress, "Invalid request body").WithCause(err))
		return
	}

	addr, err := h.svc.Create(r.Context(), account.ID, in, time.Now().UTC())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	web.Respond(w, http.StatusCreated, moduleAddress, "Address created successfully",
		toAddressResponse(addr))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request, account identity.Account) {
	list, err := h.svc.List(r.Context(), account.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	out := make([]addressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAddressResponse(a))
	}
	web.Respond(w, http.StatusOK, moduleAddress, "", out)
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request, account identity.Account) {
	addressID := r.PathValue("addressId")
	if addressID == "" {
		web.WriteError(h.log, w, moduleAddress,
			web.NewError(http.StatusBadRequest, moduleAddress, "Address ID is required"))
		return
	}

	in, err := h.decodeInput(w, r)
	if err != nil {
		web.WriteError(h.log, w, moduleAddress,
			web.NewError(http.StatusBadRequest, moduleAddress, "Invalid request body").WithCause(err))
		return
	}

	addr, err := h.svc.Update(r.Context(), account.ID, addressID, in, time.Now().UTC())
	if err != nil {
		if errors.Is(err, address.ErrNotFound) {
			web.WriteError(h.log, w, moduleAddress,
				web.NewError(http.StatusNotFound, moduleAddress,
					"Address not found or you don't have permission to edit it"))
			return
		}
		h.writeServiceError(w, err)
		return
	}

	web.Respond(w, http.StatusOK, moduleAddress, "Address updated successfully",
		toAddressResponse(addr))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, account identity.Account) {
	addressID := r.PathValue("addressId")
	if addressID == "" {
		web.WriteError(h.log, w, moduleAddress,
			web.NewError(http.StatusBadRequest, moduleAddress, "Address ID is required"))
		return
	}

	if err := h.svc.Delete(r.Context(), account.ID, addressID); err != nil {
		if errors.Is(err, address.ErrNotFound) {
			web.WriteError(h.log, w, moduleAddress,
				web.NewError(http.StatusNotFound, moduleAddress, "Address not found"))
			return
		}
		h.writeServiceError(w, err)
		return
	}

	web.Respond(w, http.StatusOK, moduleAddress, "Address deleted successfully", nil)
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (address.Input, error) {
	fields, err := web.DecodeFields(w, r, h.maxBodyBytes)
	if err != nil {
		return address.Input{}, err
	}
	return address.Input{
		RecipientName: fields.Get("recipientName"),
		PhoneNumber:   fields.Get("phoneNumber"),
		Label:         fields.Get("label"),
		AddressLine:   fields.Get("addressLine"),
		Landmark:      fields.Get("landmark"),
		City:          fields.Get("city"),
		State:         fields.Get("state"),
		PostalCode:    fields.Get("postalCode"),
		Country:       fields.Get("country"),
		IsDefault:     fields.Bool("isDefault"),
	}, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := address.IsValidation(err); ok {
		web.WriteError(h.log, w, moduleAddress,
			web.ValidationError(moduleAddress, "Address Validation Error", ve.Violations))
		return
	}
	web.WriteError(h.log, w, moduleAddress, err)
}
