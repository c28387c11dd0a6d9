// Package validate holds GetSet's field-level input predicates and the
// order-preserving aggregator that collects every violation, not just the
// first. Handlers build a slice of Field checks and surface Result.Errors
// verbatim to clients.
package validate
