package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// releaseScript deletes the key only while it still holds our token,
// so an expired lock taken over by another signup is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

const tokenLength = 24

// SignupLock is a short-lived Redis mutex keyed by login and email.
type SignupLock struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *logrus.Logger
}

func NewSignupLock(rdb redis.UniversalClient, ttl time.Duration, logger *logrus.Logger) *SignupLock {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &SignupLock{rdb: rdb, ttl: ttl, prefix: "lock:", logger: logger}
}

// Acquire takes every key or none. ok is false when any key is already held.
// The returned release is safe to call more than once.
func (l *SignupLock) Acquire(ctx context.Context, keys ...string) (func(), bool, error) {
	token, err := helpers.RandomAlphanumeric(tokenLength)
	if err != nil {
		return nil, false, fmt.Errorf("lock token: %w", err)
	}

	held := make([]string, 0, len(keys))
	release := func() {
		// release must run even if the request context is gone
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		for _, k := range held {
			if err := releaseScript.Run(rctx, l.rdb, []string{k}, token).Err(); err != nil {
				l.logger.WithError(err).WithField("key", k).Warn("release signup lock failed")
			}
		}
		held = held[:0]
	}

	for _, k := range keys {
		key := l.prefix + k
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			release()
			return nil, false, err
		}
		if !ok {
			release()
			l.logger.WithField("key", k).Debug("signup lock busy")
			return nil, false, nil
		}
		held = append(held, key)
	}
	return release, true, nil
}
