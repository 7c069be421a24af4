package subscription

import (
	"context"
	"errors"
	"fmt"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// Update carries the mutable subscription fields for PATCH semantics.
// Nil means "leave unchanged".
type Update struct {
	TargetURL *string
	Secret    *string
	Events    *[]string
}

// UseCase defines the business operations for subscription management
type UseCase interface {
	Create(ctx context.Context, targetURL string, secret *string, events []string) (Subscription, error)
	Get(ctx context.Context, id string) (Subscription, error)
	List(ctx context.Context, limit, offset int) ([]Subscription, error)
	Patch(ctx context.Context, id string, update Update) (Subscription, error)
	Delete(ctx context.Context, id string) error
	/* Upsert writes a subscription with a caller-chosen id, used by the
	 * seed loader at startup
	 */
	Upsert(ctx context.Context, sub Subscription) error
}

type Service struct {
	Repo  Repository
	Cache CacheWriter
}

// NewService creates a new subscription service with dependency injection
func NewService(repo Repository, cache CacheWriter) *Service {
	return &Service{
		Repo:  repo,
		Cache: cache,
	}
}

// Create validates and stores a new subscription, then write-through caches it
func (s *Service) Create(ctx context.Context, targetURL string, secret *string, events []string) (Subscription, error) {
	sub, err := New(targetURL, secret, events)
	if err != nil {
		return Subscription{}, fmt.Errorf("validating subscription: %w", err)
	}
	if err := s.Repo.Insert(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("storing subscription: %w", err)
	}
	s.Cache.Set(ctx, sub)
	return sub, nil
}

// Get reads a subscription from the durable store
func (s *Service) Get(ctx context.Context, id string) (Subscription, error) {
	sub, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Subscription{}, err
		}
		return Subscription{}, fmt.Errorf("getting subscription: %w", err)
	}
	return sub, nil
}

// List returns a page of subscriptions
func (s *Service) List(ctx context.Context, limit, offset int) ([]Subscription, error) {
	subs, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	return subs, nil
}

// Patch applies a partial update and re-caches the result
func (s *Service) Patch(ctx context.Context, id string, update Update) (Subscription, error) {
	sub, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Subscription{}, err
		}
		return Subscription{}, fmt.Errorf("getting subscription: %w", err)
	}
	if update.TargetURL != nil {
		if err := ValidateTargetURL(*update.TargetURL); err != nil {
			return Subscription{}, fmt.Errorf("validating subscription: %w", err)
		}
		sub.TargetURL = *update.TargetURL
	}
	if update.Secret != nil {
		sub.Secret = update.Secret
	}
	if update.Events != nil {
		sub.Events = *update.Events
	}
	if err := s.Repo.Update(ctx, sub); err != nil {
		return Subscription{}, fmt.Errorf("updating subscription: %w", err)
	}
	s.Cache.Set(ctx, sub)
	return sub, nil
}

// Delete removes the subscription and invalidates its cache entry.
// Delivery logs written for it are retained.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting subscription: %w", err)
	}
	s.Cache.Invalidate(ctx, id)
	return nil
}

// Upsert inserts or replaces a subscription keeping its id
func (s *Service) Upsert(ctx context.Context, sub Subscription) error {
	if err := ValidateTargetURL(sub.TargetURL); err != nil {
		return fmt.Errorf("validating subscription: %w", err)
	}
	_, err := s.Repo.Get(ctx, sub.ID)
	switch {
	case err == nil:
		if err := s.Repo.Update(ctx, sub); err != nil {
			return fmt.Errorf("updating subscription: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		if err := s.Repo.Insert(ctx, sub); err != nil {
			return fmt.Errorf("storing subscription: %w", err)
		}
	default:
		return fmt.Errorf("getting subscription: %w", err)
	}
	s.Cache.Set(ctx, sub)
	return nil
}
