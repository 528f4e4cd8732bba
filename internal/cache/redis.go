package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache guarda as entradas no Redis, compartilhando o cache entre
// réplicas da API. Falhas do Redis rebaixam para cache miss; o cache
// nunca derruba uma busca.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache conecta no Redis a partir da URL de conexão
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("erro ao pingar o Redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// Close encerra a conexão com o Redis
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Erro ao ler do Redis (tratado como miss): %v", err)
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Erro ao gravar no Redis: %v", err)
	}
}

func (c *RedisCache) Del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("Erro ao remover do Redis: %v", err)
	}
}
