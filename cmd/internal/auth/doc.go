// Package auth implements the account session flows for GetSet: register,
// login, logout, access-token refresh and password change.
//
// It coordinates the credential hasher (security/password), the token
// issuer (security/token) and the account store (identity), and owns the
// session state machine: Anonymous -> Authenticated -> Authenticated-
// Refreshed -> LoggedOut. The single stored refresh token per account makes
// login a rotation and logout a revocation.
package auth
