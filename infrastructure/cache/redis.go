// Package cache guarda respostas de narrativa já geradas para evitar chamadas repetidas ao modelo.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/config"
)

const keyPrefix = "saas-metrics:narrative:"

// ErrCacheMiss indica que a chave não existe ou expirou
var ErrCacheMiss = errors.New("cache miss")

// Cache define as operações usadas pelo serviço de narrativas
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisClient é o subconjunto do cliente go-redis usado pelo RedisCache
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

type RedisCache struct {
	client     RedisClient
	defaultTTL time.Duration
}

// NewRedisCache conecta ao Redis e valida a conexão com PING
func NewRedisCache(ctx context.Context, cfg config.Redis) (*RedisCache, error) {
	opts := &redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis %s: %w", cfg.Addr, err)
	}

	logrus.WithField("addr", cfg.Addr).Info("Cache de narrativas conectado ao Redis")

	return NewRedisCacheWithClient(client, cfg.CacheTTL), nil
}

func NewRedisCacheWithClient(client RedisClient, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// Get retorna ErrCacheMiss quando a chave não existe
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("erro ao ler a chave %s do cache: %w", key, err)
	}
	return val, nil
}

// Set grava o valor; ttl zero usa o TTL padrão da configuração
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar a chave %s no cache: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("erro ao remover a chave %s do cache: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
