// Package sequence provides core.Sequencer backends living outside the document store.
package sequence

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/ericnguyen1274/Customer---App/core"
)

const keyPrefix = "seq:"

// RedisSequencer allocates ids with INCR, so every caller sharing the redis instance sees
// strictly increasing values.
type RedisSequencer struct {
	client redis.Cmdable
}

var _ core.SequenceSeeder = (*RedisSequencer)(nil)

func NewRedisSequencer(client redis.Cmdable) *RedisSequencer {
	return &RedisSequencer{client: client}
}

// OpenRedis connects to the redis server configured in conf.
func OpenRedis(ctx context.Context, conf core.SequenceConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

func (s *RedisSequencer) NextSequence(ctx context.Context, name string) (int64, error) {
	n, err := s.client.Incr(ctx, keyPrefix+name).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "incrementing sequence %s", name)
	}
	return n, nil
}

// seedScript sets KEYS[1] to ARGV[1] unless it already holds a higher value.
var seedScript = redis.NewScript(`
local cur = tonumber(redis.call("GET", KEYS[1]) or "0")
if cur < tonumber(ARGV[1]) then
	redis.call("SET", KEYS[1], ARGV[1])
end
return 0
`)

func (s *RedisSequencer) SeedSequence(ctx context.Context, name string, n int64) error {
	err := seedScript.Run(ctx, s.client, []string{keyPrefix + name}, n).Err()
	if err == redis.Nil {
		err = nil
	}
	return errors.Wrapf(err, "seeding sequence %s", name)
}
