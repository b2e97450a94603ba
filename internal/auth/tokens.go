package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenTTL = time.Hour

// ErrTokenInvalid rejects unknown or expired reset tokens.
var ErrTokenInvalid = errors.New("auth: reset token invalid or expired")

// ResetTokens stores single-use password reset tokens in redis. A token maps
// to the user it was issued for and expires after an hour.
type ResetTokens struct {
	client *redis.Client
}

// NewResetTokens builds the token store.
func NewResetTokens(client *redis.Client) *ResetTokens {
	return &ResetTokens{client: client}
}

func resetKey(token string) string {
	return "stockflow:reset:" + token
}

// Issue creates a token for the user.
func (t *ResetTokens) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := t.client.Set(ctx, resetKey(token), userID, resetTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume resolves and deletes a token, returning the user it belongs to.
func (t *ResetTokens) Consume(ctx context.Context, token string) (string, error) {
	userID, err := t.client.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
