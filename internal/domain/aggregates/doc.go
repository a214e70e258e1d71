// Package aggregates defines domain-facing aggregate contracts and the error
// taxonomy shared by every write path.
//
// Contracts avoid persistence details and mark the write boundaries where
// invariants must hold atomically.
package aggregates
