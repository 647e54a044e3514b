// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Entry is a single raw dictionary row as found in a category source:
// an inflected surface form (already case/diacritic-stripped by the
// upstream lexicon) and the canonical lemma it reduces to.
type Entry struct {
	WordNosc string `json:"word_nosc"`
	Lemma    string `json:"lemma"`
}

// Pair is one (word_nosc, lemma) pair in a serialized bundle.
type Pair [2]string

// Bundle is the merged, versioned dictionary artifact produced by the
// build pipeline and consumed at run time.
//
// Invariant: WordNosc values are unique across Entries, and entry order
// reflects category priority — the first category to claim a word wins,
// so re-serializing in order reproduces the build exactly.
type Bundle struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"` // RFC 3339
	Entries   []Pair `json:"entries"`
}

// BundleStore persists the dictionary bundle to durable storage.
// Writes must be transactional: a crash mid-write must not corrupt a
// previously committed bundle. Concurrent reads are safe.
type BundleStore interface {
	// SaveBundle persists the bundle, overwriting any prior one.
	SaveBundle(b *Bundle) error

	// LoadBundle retrieves the stored bundle.
	// Returns nil, nil if none has been saved yet.
	LoadBundle() (*Bundle, error)

	// DeleteBundle removes the stored bundle. Idempotent.
	DeleteBundle() error
}

// Fetcher retrieves the raw source text for one lexical category at
// build time. A non-success response is an error naming the category.
type Fetcher interface {
	FetchCategory(category string) (string, error)
}

// Watcher monitors the bundle file for changes so the daemon can hot
// reload the dictionary. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring path. onChange is called with the absolute
	// path after each (debounced) change. The callback may be invoked
	// from any goroutine.
	Watch(path string, onChange func(path string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
