package kvstore

// KVStore is the persistence abstraction for the definition store. It is a
// plain key/value contract; backends live in the boltdb and badgerdb
// sub packages.
type KVStore interface {
	Put(key, value []byte) error

	// Get returns the value associated with the key.
	// If the key does not exist, nil is returned.
	Get(key []byte) ([]byte, error)

	Delete(key []byte) error

	// PrefixIterator returns a KVIterator that will
	// visit all K/V pairs with the provided prefix
	PrefixIterator(prefix []byte) KVIterator

	Close() error
}

// KVIterator is an abstraction around key iteration
type KVIterator interface {

	// Next will advance the iterator to the next key
	Next()

	// Key returns the key pointed to by the iterator
	// The bytes returned are **ONLY** valid until the next call to Next/Close.
	// Continued use after that requires that they be copied.
	Key() []byte

	// Value returns the value pointed to by the iterator
	// The bytes returned are **ONLY** valid until the next call to Next/Close.
	// Continued use after that requires that they be copied.
	Value() []byte

	// Valid returns whether or not the iterator is in a valid state
	Valid() bool

	// Close closes the iterator
	Close() error
}
