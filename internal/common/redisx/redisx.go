// Package redisx holds the optimistic-transaction plumbing shared by the
// Redis repositories.
package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// ErrTxConflict is returned when a transaction keeps losing WATCH races
var ErrTxConflict = errors.New("redis transaction aborted after repeated conflicts")

const (
	// maxTxRetries bounds how many times a watched transaction is re-run
	maxTxRetries = 32

	txInitialInterval = 2 * time.Millisecond
	txMaxInterval     = 100 * time.Millisecond
	txMaxElapsed      = 5 * time.Second
)

func newTxBackOff(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = txInitialInterval
	policy.MaxInterval = txMaxInterval
	policy.MaxElapsedTime = txMaxElapsed
	return backoff.WithContext(backoff.WithMaxRetries(policy, maxTxRetries), ctx)
}

// Transact runs fn inside WATCH on keys and re-runs it, after a jittered
// wait, while another client modifies a watched key before EXEC. Errors
// returned by fn are passed through.
func Transact(ctx context.Context, client *redis.Client, fn func(tx *redis.Tx) error, keys ...string) error {
	var err error
	_ = backoff.Retry(func() error {
		err = client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			return err
		}
		return nil
	}, newTxBackOff(ctx))

	if errors.Is(err, redis.TxFailedErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return ErrTxConflict
	}
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// GetJSON loads the JSON document at key into v. It returns redis.Nil when
// the key does not exist.
func GetJSON(ctx context.Context, c getter, key string, v interface{}) error {
	raw, err := c.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}
