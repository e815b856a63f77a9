// Package collection reads and writes the named collections that make up
// the tournament state. Missing or unreadable content never fails a load:
// the caller's fallback is substituted and the Result says which case
// applied.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/tourneytrack/internal/storage"
)

// Key names a collection in the key/value namespace
type Key string

// Collection keys
const (
	KeyTeams         Key = "teams"
	KeyFixtures      Key = "fixtures"
	KeyRegistrations Key = "registrations"
	KeyCurrentUser   Key = "currentUser"
)

// State records how a Load was satisfied
type State int

const (
	StateFound   State = iota // stored content decoded
	StateMissing              // nothing stored, fallback used
	StateCorrupt              // stored content unreadable, fallback used
)

func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateMissing:
		return "missing"
	case StateCorrupt:
		return "corrupt"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is the outcome of a Load
type Result[T any] struct {
	Value T
	State State
	// DecodeErr holds the decoding failure when State is StateCorrupt
	DecodeErr error
}

// Load reads the collection under key. The returned error is reserved for
// backend failures; absent or undecodable content yields fallback.
func Load[T any](ctx context.Context, s storage.Storage, key Key, fallback T) (Result[T], error) {
	data, err := s.Get(ctx, string(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Result[T]{Value: fallback, State: StateMissing}, nil
		}
		return Result[T]{Value: fallback}, fmt.Errorf("load %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return Result[T]{Value: fallback, State: StateCorrupt, DecodeErr: err}, nil
	}
	return Result[T]{Value: value, State: StateFound}, nil
}

// Save serializes value and overwrites the collection under key
func Save[T any](ctx context.Context, s storage.Storage, key Key, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, string(key), data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
