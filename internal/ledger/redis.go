package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "roristake:stakes"

// Redis stores balances in a single hash, one field per wallet.
type Redis struct {
	rdb *redis.Client
	key string
}

func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func NewRedis(rdb *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{rdb: rdb, key: key}
}

func (r *Redis) Stake(ctx context.Context, walletID string, amount float64) (float64, error) {
	if !(amount > 0) {
		return 0, ErrInvalidAmount
	}
	bal, err := r.rdb.HIncrByFloat(ctx, r.key, walletID, amount).Result()
	if err != nil {
		return 0, fmt.Errorf("redis stake: %w", err)
	}
	return bal, nil
}

func (r *Redis) Balance(ctx context.Context, walletID string) (float64, error) {
	bal, err := r.rdb.HGet(ctx, r.key, walletID).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis balance: %w", err)
	}
	return bal, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
