// Package aggregates contains graph-backed implementations of domain aggregate contracts.
//
// Implementations here read their invariant inputs with the graph package's
// transaction-scoped readers and own the write transaction, so the guard read
// and the conditional write commit or fail together.
package aggregates
