package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores the session cookies in a Redis hash so several
// terminals can share one login. The key expires with the cookies.
type RedisPersister struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

func NewRedisPersister(client redis.UniversalClient, key string) *RedisPersister {
	if key == "" {
		key = "examctl:session"
	}
	return &RedisPersister{client: client, key: key, ttl: CookieTTL}
}

func (r *RedisPersister) Save(ctx context.Context, p Persisted) error {
	cookies, err := sessionCookies(p, time.Now(), r.ttl)
	if err != nil {
		return err
	}
	fields := make(map[string]any, len(cookies))
	for _, c := range cookies {
		fields[c.Name] = c.Value
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		pipe.HSet(ctx, r.key, fields)
		pipe.Expire(ctx, r.key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *RedisPersister) Load(ctx context.Context) (Persisted, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Persisted{}, ErrNoCredential
		}
		return Persisted{}, fmt.Errorf("redis load session: %w", err)
	}

	token := values[TokenCookie]
	if token == "" {
		return Persisted{}, ErrNoCredential
	}
	p := Persisted{Token: token}
	if raw, ok := values[UserCookie]; ok {
		if identity, err := decodeIdentity(raw); err == nil {
			p.Identity = identity
		}
	}
	return p, nil
}

func (r *RedisPersister) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
