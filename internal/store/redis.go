package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPrefix = "game:"

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		MaxRetries: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := r.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return decode(b, value)
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisPrefix+key, b, r.ttl).Err()
}

func (r *Redis) Add(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, redisPrefix+key, b, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
