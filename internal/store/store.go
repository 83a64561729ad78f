// Package store persists extraction records. Backends are append-only: no
// update or delete operations exist, matching the immutable-history semantics
// of the domain.
package store

import "github.com/baristalabs/mastrena/internal/extraction"

// Store is an ordered, append-only collection of extraction records.
type Store interface {
	// Append assigns the next identifier, inserts the record at the end, and
	// returns the assigned id. Identifiers are monotonic and gap-free.
	Append(record extraction.Record) (uint64, error)

	// All returns every record in insertion order as a snapshot: later
	// appends must not retroactively change a returned slice.
	All() ([]extraction.Record, error)

	// Len reports the number of stored records.
	Len() (int, error)

	// Close releases backend resources.
	Close() error
}
