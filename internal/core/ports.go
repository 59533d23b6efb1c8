package core

import (
	"context"
)

// MailSession is a scoped connection to the mail store. It must be closed
// exactly once; implementations make Close idempotent so deferred cleanup
// is safe on every exit path.
type MailSession interface {
	// SelectMailbox opens the named mailbox for reading
	SelectMailbox(ctx context.Context, name string) error

	// Search returns the ids of all messages received within the last
	// daysBack days, in chronological ascending order
	Search(ctx context.Context, daysBack int) ([]uint32, error)

	// Fetch retrieves full content for the given ids, bounded by max,
	// preserving the order of ids. Each result carries its own sequence
	// number; ids the server no longer has are simply absent
	Fetch(ctx context.Context, ids []uint32, max int) ([]FetchedEmail, error)

	// Close releases the session
	Close() error
}

// MailConnector acquires mail store sessions.
type MailConnector interface {
	// Connect opens a new session; failure is fatal for the request
	Connect(ctx context.Context) (MailSession, error)
}

// ModelClient is a single classification backend.
type ModelClient interface {
	// Analyze classifies email content and returns a raw prediction token
	// with a confidence in [0,1]. A nil result with nil error means the
	// backend produced no usable prediction.
	Analyze(ctx context.Context, content, subject string) (*ModelResult, error)

	// Name identifies the backend
	Name() string

	// Ready reports whether the backend is loaded and reachable
	Ready(ctx context.Context) bool
}

// ModelRegistry resolves model selectors to backends.
type ModelRegistry interface {
	// Get returns the backend for the given selector, or nil if no such
	// backend is registered
	Get(selector string) ModelClient

	// Status reports per-backend load flags
	Status(ctx context.Context) ModelStatus
}

// Translator produces a translated-field overlay for an enriched email.
type Translator interface {
	Translate(ctx context.Context, email *EnrichedEmail) (*TranslatedFields, error)
}

// AnalysisCache stores analysis outcomes keyed by message and model so a
// page refresh does not re-run inference.
type AnalysisCache interface {
	// Get retrieves a cached entry, or an error if absent or expired
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
