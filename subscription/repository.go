package subscription

import "context"

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations against the durable store
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Get(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context, limit, offset int) ([]Subscription, error)
}

// Writer provides write operations against the durable store
type Writer interface {
	Insert(ctx context.Context, sub Subscription) error
	Update(ctx context.Context, sub Subscription) error
	/* Delete removes the durable record only; delivery logs written for the
	 * subscription are retained
	 */
	Delete(ctx context.Context, id string) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}

// Getter resolves a subscription on the delivery hot path. The cache-aside
// layer implements it; ingest and the delivery worker depend on it.
type Getter interface {
	Get(ctx context.Context, id string) (Subscription, error)
}

// CacheWriter is the write side of the subscription cache. CRUD calls it
// after every durable write; implementations swallow their own errors.
type CacheWriter interface {
	Set(ctx context.Context, sub Subscription)
	Invalidate(ctx context.Context, id string)
}
