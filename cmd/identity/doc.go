// Package identity is the account persistence boundary for GetSet.
//
// It defines the Account record, the Store contract, and two
// implementations: Postgres (production) and in-memory (dev/tests).
package identity
