// Package seen is the durable set of posting ids that have already been
// delivered. The contract is the interface, not the storage: an id must be
// committed only after its message went out, a successful commit must
// survive a crash, and ids are never removed.
package seen

// Store gates delivery. Contains answers from the in-memory load done at
// open; Commit appends durably.
type Store interface {
	Contains(id string) bool
	Commit(id string) error
	Close() error
}
