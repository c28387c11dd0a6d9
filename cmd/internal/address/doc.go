// Package address manages delivery addresses. Every operation is scoped to
// the owning account: an address ID alone never grants access.
package address
