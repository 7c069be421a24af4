package subscription

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

/* Subscription represents a registered webhook consumer
 * Uses value semantics as it represents data, not behavior
 */
type Subscription struct {
	ID        string
	TargetURL string
	// Secret is opaque to the service; it is stored and cached but never logged
	Secret *string
	// Events is advisory metadata; absence means every event type is accepted.
	// The delivery path does not filter by it.
	Events []string
}

// ErrNotFound is returned by readers when no subscription exists for an id
var ErrNotFound = errors.New("subscription not found")

// ErrInvalidTargetURL is returned when a target URL is not an absolute http(s) URL
var ErrInvalidTargetURL = errors.New("target_url must be an absolute http(s) URL")

// New creates a subscription with a fresh version-4 id
func New(targetURL string, secret *string, events []string) (Subscription, error) {
	if err := ValidateTargetURL(targetURL); err != nil {
		return Subscription{}, err
	}
	return Subscription{
		ID:        uuid.New().String(),
		TargetURL: targetURL,
		Secret:    secret,
		Events:    events,
	}, nil
}

// ValidateTargetURL checks that raw is a syntactically valid absolute http(s) URL
func ValidateTargetURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTargetURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTargetURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidTargetURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidTargetURL)
	}
	return nil
}
