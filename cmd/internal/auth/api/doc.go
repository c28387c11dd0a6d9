// Package authapi exposes the account endpoints under /api/users: register,
// login, logout, access-token refresh, password change and profile lookup.
//
// Transport is cookie-first: the access token travels in an "accessToken"
// cookie scoped to "/", the refresh token in a "refreshToken" cookie scoped
// to the refresh endpoint only. A Bearer header is accepted as an
// alternative for non-browser clients. Every response uses the shared
// envelope from cmd/internal/web.
package authapi
