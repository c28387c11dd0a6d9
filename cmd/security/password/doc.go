// Package password provides password hashing and verification for GetSet.
//
// It implements salted PBKDF2-SHA512 key derivation and includes:
// - Configurable derivation cost (via environment variables)
// - Password policy validation
// - Constant-time verification against a stored {salt, hash} pair
//
// Security notes:
// - Verification never short-circuits on the first differing byte.
// - Parameters are pinned in Config so credentials hashed under older
//   defaults keep verifying after defaults change.
package password
