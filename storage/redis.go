package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore stocke la session dans Redis/Dragonfly, préfixée par l'espace de noms
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisClient crée un client Redis
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

// NewRedisStore crée un stockage Redis
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{client: client, prefix: "sahne:" + namespace + ":"}
}

// Get récupère une valeur
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lecture redis de %s: %w", key, err)
	}
	return value, true, nil
}

// SetMany écrit plusieurs clés avec un seul MSET
func (s *RedisStore) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]interface{}, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, s.prefix+k, v)
	}
	if err := s.client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("écriture redis de la session: %w", err)
	}
	return nil
}

// Remove supprime plusieurs clés avec un seul DEL
func (s *RedisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("suppression redis de la session: %w", err)
	}
	return nil
}

// Close ferme la connexion Redis
func (s *RedisStore) Close() error {
	return s.client.Close()
}
