// Package web defines the canonical HTTP response envelope and the typed
// error that every handler raises. Historically the envelope drifted across
// iterations of the API; this package pins the one richer shape
// {success, statusCode, module, message, data, errors} and uses it for both
// success and failure paths.
package web
