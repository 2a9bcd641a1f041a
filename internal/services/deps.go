package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vocabulary/internal/repositories"
	"vocabulary/internal/uniqueness"
	"vocabulary/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Validator checks inbound requests. See validation.Validator.
type Validator interface {
	Struct(value any) []validation.FieldViolation
	Fields(values map[string]string, rules []validation.FieldRule) []validation.FieldViolation
}

// PasswordHasher derives the stored hash from a plaintext password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// EventPublisher delivers lifecycle events. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// BcryptHasher hashes passwords with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Deps are the capabilities shared by the entity services. Zero fields fall
// back to working defaults, with events discarded.
type Deps struct {
	Validator Validator
	Hasher    PasswordHasher
	Guard     uniqueness.Guard
	Events    EventPublisher
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	if d.Hasher == nil {
		d.Hasher = BcryptHasher{}
	}
	if d.Guard == nil {
		d.Guard = uniqueness.NewLocalGuard(10 * time.Second)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) now() time.Time {
	return d.Now().UTC()
}

// stamp returns the current time, never earlier than prev.
func (d Deps) stamp(prev time.Time) time.Time {
	now := d.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

// Event is the body of a lifecycle message.
type Event struct {
	Event      string    `json:"event"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// publish emits routingKey for id. Delivery failures are logged only; the
// write they describe has already succeeded.
func (d Deps) publish(routingKey, id string) {
	if d.Events == nil {
		return
	}
	body, err := json.Marshal(Event{Event: routingKey, ID: id, OccurredAt: d.now()})
	if err != nil {
		slog.Error("failed to marshal event", "event", routingKey, "error", err)
		return
	}
	if err := d.Events.Publish(routingKey, body); err != nil {
		slog.Warn("failed to publish event", "event", routingKey, "id", id, "error", err)
	}
}

// uniqueKey is a unique field value about to be written.
type uniqueKey struct {
	field string
	value string
	claim string
}

// claim takes the guard on every key in order. A key held by another request
// is reported as a conflict on that field; claims already taken are released.
func (d Deps) claim(ctx context.Context, entity string, keys []uniqueKey) (func(), error) {
	var releases []func()
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, k := range keys {
		release, err := d.Guard.Claim(ctx, k.claim)
		if err != nil {
			releaseAll()
			if errors.Is(err, uniqueness.ErrClaimed) {
				return nil, &ConflictError{Entity: entity, Field: k.field, Value: k.value}
			}
			return nil, fmt.Errorf("failed to claim %s: %w", k.field, err)
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}

// optional turns a repository ErrNotFound into an empty result.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
