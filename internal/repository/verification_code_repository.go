package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound is returned when no verification code is stored for the
// user (never sent, expired, or invalidated after too many attempts).
var ErrCodeNotFound = errors.New("verification code not found")

// VerificationCodeRepository stores hashed phone codes with their validity
// window, the per-user resend cooldown, and the failed-attempt counter.
// Expiry is delegated to Redis key TTLs.
type VerificationCodeRepository interface {
	SaveCode(ctx context.Context, userID, codeHash string, ttl time.Duration) error
	GetCode(ctx context.Context, userID string) (string, error)
	DeleteCode(ctx context.Context, userID string) error
	// IncrementAttempts bumps and returns the failed-attempt counter. The
	// counter shares the code's validity window.
	IncrementAttempts(ctx context.Context, userID string, ttl time.Duration) (int, error)
	SetCooldown(ctx context.Context, userID string, d time.Duration) error
	InCooldown(ctx context.Context, userID string) (bool, error)
}

type verificationCodeRepository struct {
	client *redis.Client
}

// NewVerificationCodeRepository returns a Redis-backed implementation.
func NewVerificationCodeRepository(client *redis.Client) VerificationCodeRepository {
	return &verificationCodeRepository{client: client}
}

func codeKey(userID string) string     { return fmt.Sprintf("profile:verify:code:%s", userID) }
func attemptKey(userID string) string  { return fmt.Sprintf("profile:verify:attempts:%s", userID) }
func cooldownKey(userID string) string { return fmt.Sprintf("profile:verify:cooldown:%s", userID) }

func (r *verificationCodeRepository) SaveCode(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	if err := r.client.Set(ctx, codeKey(userID), codeHash, ttl).Err(); err != nil {
		return err
	}
	// A fresh code starts with a fresh attempt counter.
	return r.client.Del(ctx, attemptKey(userID)).Err()
}

func (r *verificationCodeRepository) GetCode(ctx context.Context, userID string) (string, error) {
	hash, err := r.client.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *verificationCodeRepository) DeleteCode(ctx context.Context, userID string) error {
	return r.client.Del(ctx, codeKey(userID), attemptKey(userID)).Err()
}

func (r *verificationCodeRepository) IncrementAttempts(ctx context.Context, userID string, ttl time.Duration) (int, error) {
	count, err := r.client.Incr(ctx, attemptKey(userID)).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, attemptKey(userID), ttl).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (r *verificationCodeRepository) SetCooldown(ctx context.Context, userID string, d time.Duration) error {
	return r.client.Set(ctx, cooldownKey(userID), "1", d).Err()
}

func (r *verificationCodeRepository) InCooldown(ctx context.Context, userID string) (bool, error) {
	n, err := r.client.Exists(ctx, cooldownKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
