package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"getset/cmd/identity"
	"getset/cmd/internal/auth"
	"getset/cmd/internal/web"
	"getset/cmd/security/token"
)

const (
	moduleRegister       = "[USER-REGISTRATION]"
	moduleLogin          = "[USER-LOGIN]"
	moduleLogout         = "[USER-LOGOUT]"
	moduleRefresh        = "[TOKEN-REFRESH]"
	moduleChangePassword = "[PASSWORD-CHANGE]"
	moduleProfile        = "[USER-PROFILE]"
)

// Handler wires the /api/users endpoints to the auth service.
type Handler struct {
	log *slog.Logger
	cfg Config
	svc *auth.Service
}

// NewHandler constructs an auth API handler.
func NewHandler(log *slog.Logger, svc *auth.Service, cfg Config) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, svc: svc}
}

// Register wires the auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /api/users/register", h.handleRegister)
	mux.HandleFunc("POST /api/users/login", h.handleLogin)
	mux.HandleFunc("POST /api/users/logout", h.RequireAccount(h.handleLogout))
	mux.HandleFunc("POST /api/users/refresh", h.handleRefresh)
	mux.HandleFunc("POST /api/users/change-password", h.RequireAccount(h.handleChangePassword))
	mux.HandleFunc("GET /api/users/me", h.RequireAccount(h.handleMe))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	fields, err := web.DecodeFields(w, r, h.cfg.MaxBodyBytes)
	if err != nil {
		web.WriteError(h.log, w, moduleRegister,
			web.NewError(http.StatusBadRequest, moduleRegister, "Invalid request body").WithCause(err))
		return
	}

	account, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:        fields.Get("name"),
		Email:       fields.Get("email"),
		PhoneNumber: fields.Get("phoneNumber"),
		Password:    fields.Get("password"),
	})
	if err != nil {
		if ve, ok := auth.IsValidation(err); ok {
			web.WriteError(h.log, w, moduleRegister,
				web.ValidationError(moduleRegister, "Validation failed", ve.Violations))
			return
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			web.WriteError(h.log, w, moduleRegister,
				web.NewError(http.StatusConflict, moduleRegister, "An account with this email already exists."))
			return
		}
		web.WriteError(h.log, w, moduleRegister, err)
		return
	}

	web.Respond(w, http.StatusCreated, moduleRegister,
		"Account created successfully! You can now log in.",
		map[string]any{"user": toUserResponse(account)})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	fields, err := web.DecodeFields(w, r, h.cfg.MaxBodyBytes)
	if err != nil {
		web.WriteError(h.log, w, moduleLogin,
			web.NewError(http.StatusBadRequest, moduleLogin, "Invalid request body").WithCause(err))
		return
	}

	email := fields.Get("email")
	passwordPlain := fields.Get("password")
	if email == "" || passwordPlain == "" {
		web.WriteError(h.log, w, moduleLogin,
			web.NewError(http.StatusBadRequest, moduleLogin, "Email and password are required"))
		return
	}

	account, issued, err := h.svc.Login(r.Context(), email, passwordPlain, time.Now().UTC())
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			web.WriteError(h.log, w, moduleLogin,
				web.NewError(http.StatusUnauthorized, moduleLogin, "Invalid email or password"))
			return
		}
		web.WriteError(h.log, w, moduleLogin, err)
		return
	}

	h.setAccessCookie(w, issued.AccessToken)
	h.setRefreshCookie(w, issued.RefreshToken)

	data := map[string]any{
		"user": toUserResponse(account),
	}
	if h.cfg.Development() {
		data["accessToken"] = issued.AccessToken
		data["refreshToken"] = issued.RefreshToken
	}
	web.Respond(w, http.StatusOK, moduleLogin, "Logged in successfully", data)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request, account identity.Account) {
	if err := h.svc.Logout(r.Context(), account.ID, time.Now().UTC()); err != nil {
		web.WriteError(h.log, w, moduleLogout, err)
		return
	}
	h.clearAuthCookies(w)
	web.Respond(w, http.StatusOK, moduleLogout, "Logged out successfully", nil)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := refreshTokenFromRequest(r)
	if refreshToken == "" {
		web.WriteError(h.log, w, moduleRefresh,
			web.NewError(http.StatusUnauthorized, moduleRefresh, "Refresh token not found"))
		return
	}

	accessToken, _, err := h.svc.Refresh(r.Context(), refreshToken, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrSessionRevoked):
			web.WriteError(h.log, w, moduleRefresh,
				web.NewError(http.StatusUnauthorized, moduleRefresh, "Refresh token not found or revoked"))
		case isTokenVerifyError(err):
			web.WriteError(h.log, w, moduleRefresh,
				web.NewError(http.StatusUnauthorized, moduleRefresh, "Invalid or expired refresh token"))
		default:
			web.WriteError(h.log, w, moduleRefresh, err)
		}
		return
	}

	h.setAccessCookie(w, accessToken)

	data := map[string]any{
		"message": "Access token refreshed successfully",
	}
	if h.cfg.Development() {
		data["accessToken"] = accessToken
	}
	web.Respond(w, http.StatusOK, moduleRefresh, "Access token refreshed successfully", data)
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request, account identity.Account) {
	fields, err := web.DecodeFields(w, r, h.cfg.MaxBodyBytes)
	if err != nil {
		web.WriteError(h.log, w, moduleChangePassword,
			web.NewError(http.StatusBadRequest, moduleChangePassword, "Invalid request body").WithCause(err))
		return
	}

	current := fields.Get("currentPassword")
	next := fields.Get("newPassword")
	if current == "" || next == "" {
		web.WriteError(h.log, w, moduleChangePassword,
			web.NewError(http.StatusBadRequest, moduleChangePassword, "Current and new password are required"))
		return
	}

	err = h.svc.ChangePassword(r.Context(), account.ID, current, next, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWrongPassword):
			web.WriteError(h.log, w, moduleChangePassword,
				web.NewError(http.StatusUnauthorized, moduleChangePassword, "Current password is incorrect"))
		case errors.Is(err, auth.ErrSamePassword):
			web.WriteError(h.log, w, moduleChangePassword,
				web.NewError(http.StatusBadRequest, moduleChangePassword, "New password must be different from the current password"))
		default:
			if ve, ok := auth.IsValidation(err); ok {
				web.WriteError(h.log, w, moduleChangePassword,
					web.ValidationError(moduleChangePassword, "Validation failed", ve.Violations))
				return
			}
			web.WriteError(h.log, w, moduleChangePassword, err)
		}
		return
	}

	web.Respond(w, http.StatusOK, moduleChangePassword, "Password changed successfully", nil)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request, account identity.Account) {
	web.Respond(w, http.StatusOK, moduleProfile, "", map[string]any{
		"user": toUserResponse(account),
	})
}

func isTokenVerifyError(err error) bool {
	return errors.Is(err, token.ErrTokenExpired) || errors.Is(err, token.ErrTokenInvalid)
}
