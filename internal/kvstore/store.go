// Package kvstore provides the durable key-value capability the session
// engine persists through. Implementations are synchronous and atomic per
// key; there are no ordering guarantees across keys.
package kvstore

// Store is the persistence contract consumed by the ledger and the session
// engine. A missing key is reported through the bool, not an error.
type Store interface {
	// Get returns the value stored under key, or ok=false if absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Close releases any underlying resources.
	Close() error
}
