package expand

// Dictionary is the external term-dictionary collaborator (§6): one
// instance per searched database, composed of one or more shards.
type Dictionary interface {
	Shards() []Shard
}

// Shard is one term-dictionary partition (sub-database). Expansion
// limits are enforced independently within each shard.
type Shard interface {
	// ID identifies the shard for cache-key purposes.
	ID() string

	// PrefixIterator returns an iterator over every dictionary term
	// with the given prefix, in dictionary (lexicographic) order. An
	// empty prefix iterates the whole shard.
	PrefixIterator(prefix string) Iterator
}

// Iterator walks a shard's term dictionary in order.
type Iterator interface {
	// Next advances to the next term, returning false when exhausted.
	Next() bool
	// Term returns the current term.
	Term() string
	// CollectionFrequency returns the current term's collection
	// frequency within this shard.
	CollectionFrequency() int
}
