package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"user-service/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by UserCache.Get when the entry does not exist.
var ErrMiss = errors.New("cache miss")

// UserCache stores users as JSON under user:<id>.
type UserCache struct {
	c   Cache
	ttl time.Duration
}

func NewUserCache(c Cache, ttl time.Duration) *UserCache {
	return &UserCache{c: c, ttl: ttl}
}

func userKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

func (u *UserCache) Get(ctx context.Context, id int64) (*model.User, error) {
	raw, err := u.c.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("UserCache.Get: %w", err)
	}
	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("UserCache.Get: %w", err)
	}
	return &user, nil
}

func (u *UserCache) Put(ctx context.Context, user *model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("UserCache.Put: %w", err)
	}
	if err := u.c.Set(ctx, userKey(user.ID), raw, u.ttl).Err(); err != nil {
		return fmt.Errorf("UserCache.Put: %w", err)
	}
	return nil
}

func (u *UserCache) Invalidate(ctx context.Context, id int64) error {
	if err := u.c.Del(ctx, userKey(id)).Err(); err != nil {
		return fmt.Errorf("UserCache.Invalidate: %w", err)
	}
	return nil
}
