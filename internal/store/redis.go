package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ayush/food-ratings/internal/models"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// UserStore is the identity persistence TokenCache wraps.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}

// cachedUser is what the cache keeps per token: enough to authorize a
// request, no password hash.
type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenCache is a read-through Redis cache in front of GetUserByToken.
// Access tokens never change and users are never deleted through the API,
// so an entry only goes stale when the backing store is wiped; it then
// lives until its TTL runs out. Keys are SHA-256 digests of the token.
// Redis failures fall back to the wrapped store.
type TokenCache struct {
	UserStore
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenCache(users UserStore, rdb *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{UserStore: users, rdb: rdb, ttl: ttl}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:])
}

func (c *TokenCache) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	key := tokenKey(token)

	val, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if jerr := json.Unmarshal(val, &cu); jerr == nil {
			return &models.User{ID: cu.ID, Name: cu.Name, AccessToken: token, CreatedAt: cu.CreatedAt}, nil
		}
	case !errors.Is(err, redis.Nil):
		slog.Warn("token cache get", "error", err)
	}

	u, err := c.UserStore.GetUserByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	b, _ := json.Marshal(cachedUser{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt})
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("token cache set", "error", err)
	}
	return u, nil
}
