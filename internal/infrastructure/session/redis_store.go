package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

var _ repository.ChatSessionRepository = (*RedisStore)(nil)

const redisKeyPrefix = "chat:session:"

// RedisKV subconjunto de comandos que usa el almacén; *redis.Client lo implementa.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore sesiones serializadas en JSON con expiración por inactividad (TTL en cada Save).
type RedisStore struct {
	rdb RedisKV
	ttl time.Duration
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisStore construye el almacén sobre un cliente ya conectado.
func NewRedisStore(rdb RedisKV, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*entity.ChatSession, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %v", domain.ErrSourceUnavailable, err)
	}
	var sess entity.ChatSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: sesión corrupta %s: %v", domain.ErrSourceUnavailable, id, err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *entity.ChatSession) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidInput
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis: serializar sesión: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", domain.ErrSourceUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", domain.ErrSourceUnavailable, err)
	}
	return nil
}
