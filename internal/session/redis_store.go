package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps sessions as JSON under wizard:<id> with a sliding TTL.
type RedisStore struct {
	redis    *redis.Client
	tracer   trace.Tracer
	ttl      time.Duration
	lockTTL  time.Duration
	lockWait time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		redis:    client,
		tracer:   otel.Tracer("supplychain.internal.session.redis"),
		ttl:      ttl,
		lockTTL:  defaultLockTTL,
		lockWait: defaultLockWait,
	}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	ctx, span := s.tracer.Start(ctx, "session.load")
	defer span.End()

	raw, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data *Data) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()

	raw, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(id), raw, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist: %w", err)
	}
	return nil
}

// Lock takes wizard:<id>:lock with a random token. The lock expires on its own
// if the holder dies.
func (s *RedisStore) Lock(ctx context.Context, id string) (func(), error) {
	ctx, span := s.tracer.Start(ctx, "session.lock")
	defer span.End()

	key := lockKey(id)
	token := uuid.NewString()
	err := waitFor(ctx, s.lockWait, func() (bool, error) {
		ok, err := s.redis.SetNX(ctx, key, token, s.lockTTL).Result()
		if err != nil {
			return false, fmt.Errorf("session: failed to acquire lock: %w", err)
		}
		return ok, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return func() {
		// Release must outlive a cancelled request context.
		_ = unlockScript.Run(context.Background(), s.redis, []string{key}, token).Err()
	}, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("wizard:%s", id)
}

func lockKey(id string) string {
	return fmt.Sprintf("wizard:%s:lock", id)
}
