package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/profile-service/internal/flow"
)

// SetupState bundles the navigator state and the verification sub-flow state
// that together make up one user's in-progress profile setup.
type SetupState struct {
	Flow         flow.State        `json:"flow"`
	Verification flow.Verification `json:"verification"`
}

// SetupStateRepository persists per-user setup sessions. Sessions expire on
// their own; an expired session simply means the flow must be restarted.
type SetupStateRepository interface {
	// Get returns the stored session, or nil when none is active.
	Get(ctx context.Context, userID string) (*SetupState, error)
	Save(ctx context.Context, userID string, state *SetupState) error
	Delete(ctx context.Context, userID string) error
}

type setupStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSetupStateRepository returns a Redis-backed implementation with the
// given session TTL.
func NewSetupStateRepository(client *redis.Client, ttl time.Duration) SetupStateRepository {
	return &setupStateRepository{client: client, ttl: ttl}
}

func setupStateKey(userID string) string {
	return fmt.Sprintf("profile:setup:%s", userID)
}

func (r *setupStateRepository) Get(ctx context.Context, userID string) (*SetupState, error) {
	raw, err := r.client.Get(ctx, setupStateKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state SetupState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode setup state: %w", err)
	}
	return &state, nil
}

func (r *setupStateRepository) Save(ctx context.Context, userID string, state *SetupState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode setup state: %w", err)
	}
	return r.client.Set(ctx, setupStateKey(userID), raw, r.ttl).Err()
}

func (r *setupStateRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, setupStateKey(userID)).Err()
}
