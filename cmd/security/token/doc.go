// Package token issues and verifies the signed JWTs used by GetSet sessions.
//
// Two token kinds exist, signed with distinct HMAC secrets:
// - access tokens: short-lived, sent on every request
// - refresh tokens: long-lived, accepted only by the refresh endpoint
//
// Tokens are self-contained; only refresh tokens are additionally
// cross-checked against server-held state by the auth flow.
package token
