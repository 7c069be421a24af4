package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-courier/subscription"
	"gopkg.in/yaml.v3"
)

/* Loader reads a subscriptions seed file at startup
 * Useful for development and bootstrap environments where the CRUD
 * surface has not been called yet
 */

// Config represents the structure of the seed YAML file
type Config struct {
	Subscriptions []Entry `yaml:"subscriptions"`
}

// Entry represents a single subscription in the seed file
type Entry struct {
	ID        string   `yaml:"id"` // optional; generated when empty
	TargetURL string   `yaml:"target_url"`
	Secret    string   `yaml:"secret"`
	Events    []string `yaml:"events"`
}

// Loader holds the parsed entries
type Loader struct {
	entries []subscription.Subscription
}

// NewLoader creates an empty loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates the seed file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing seed YAML: %w", err)
	}

	for _, entry := range config.Subscriptions {
		sub, err := entry.subscription()
		if err != nil {
			return fmt.Errorf("validating seed entry: %w", err)
		}
		l.entries = append(l.entries, sub)
	}

	return nil
}

// List returns the parsed subscriptions
func (l *Loader) List() []subscription.Subscription {
	return l.entries
}

// Apply upserts every entry through the subscription service, which also
// warms the cache
func (l *Loader) Apply(ctx context.Context, svc subscription.UseCase) error {
	for _, sub := range l.entries {
		if err := svc.Upsert(ctx, sub); err != nil {
			return fmt.Errorf("seeding subscription %s: %w", sub.ID, err)
		}
	}
	return nil
}

func (e Entry) subscription() (subscription.Subscription, error) {
	if err := subscription.ValidateTargetURL(e.TargetURL); err != nil {
		return subscription.Subscription{}, err
	}

	id := e.ID
	if id == "" {
		id = uuid.New().String()
	} else if _, err := uuid.Parse(id); err != nil {
		return subscription.Subscription{}, fmt.Errorf("invalid subscription id %q: %w", e.ID, err)
	}

	var secret *string
	if e.Secret != "" {
		secret = &e.Secret
	}

	return subscription.Subscription{
		ID:        id,
		TargetURL: e.TargetURL,
		Secret:    secret,
		Events:    e.Events,
	}, nil
}
