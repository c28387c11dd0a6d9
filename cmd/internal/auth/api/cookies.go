package authapi

import (
	"net/http"
	"strings"
	"time"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"

	// The refresh cookie is scoped to the one endpoint that consumes it, so
	// the long-lived credential is never sent anywhere else.
	accessCookiePath  = "/"
	refreshCookiePath = "/api/users/refresh"
)

func (h *Handler) setAccessCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    value,
		Path:     accessCookiePath,
		Domain:   h.cfg.CookieDomain,
		MaxAge:   int(h.cfg.AccessCookieTTL / time.Second),
		HttpOnly: true,
		Secure:   !h.cfg.Development(),
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     refreshCookiePath,
		Domain:   h.cfg.CookieDomain,
		MaxAge:   int(h.cfg.RefreshCookieTTL / time.Second),
		HttpOnly: true,
		Secure:   !h.cfg.Development(),
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	h.expireCookie(w, accessCookieName, accessCookiePath)
	h.expireCookie(w, refreshCookieName, refreshCookiePath)
}

func (h *Handler) expireCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Domain:   h.cfg.CookieDomain,
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.cfg.Development(),
		SameSite: http.SameSiteStrictMode,
	})
}

// accessTokenFromRequest prefers the cookie and falls back to a Bearer
// header for non-browser clients.
func accessTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(accessCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	return bearerToken(r)
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func refreshTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
