package authapi

import (
	"errors"
	"net/http"

	"getset/cmd/identity"
	"getset/cmd/internal/web"
	"getset/cmd/security/token"
)

const moduleVerify = "[USER-VERIFICATION]"

// requireAuth resolves the caller's account from the access cookie or a
// Bearer header. On failure it writes the envelope and returns ok=false.
//
// Expired and malformed tokens produce distinct messages so clients know
// whether a refresh is worth attempting. An account deleted after the token
// was issued is a 404, not a 401.
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request) (identity.Account, bool) {
	accessToken := accessTokenFromRequest(r)
	if accessToken == "" {
		web.WriteError(h.log, w, moduleVerify,
			web.NewError(http.StatusUnauthorized, moduleVerify, "Unauthorized: No token provided"))
		return identity.Account{}, false
	}

	account, err := h.svc.Authenticate(r.Context(), accessToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			web.WriteError(h.log, w, moduleVerify,
				web.NewError(http.StatusUnauthorized, moduleVerify, "Token expired"))
		case errors.Is(err, token.ErrTokenInvalid):
			web.WriteError(h.log, w, moduleVerify,
				web.NewError(http.StatusUnauthorized, moduleVerify, "Invalid token"))
		case identity.IsNotFound(err):
			web.WriteError(h.log, w, moduleVerify,
				web.NewError(http.StatusNotFound, moduleVerify, "User not found"))
		default:
			web.WriteError(h.log, w, moduleVerify, err)
		}
		return identity.Account{}, false
	}
	return account, true
}

// RequireAccount adapts requireAuth for handlers outside this package that
// need the authenticated account.
func (h *Handler) RequireAccount(next func(http.ResponseWriter, *http.Request, identity.Account)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, ok := h.requireAuth(w, r)
		if !ok {
			return
		}
		next(w, r, account)
	}
}
