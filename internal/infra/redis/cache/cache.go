package infra_redis_cache

import (
	"context"
	"time"

	"github.com/go-redis/redis"
)

// Driver is the cache storage of the client, one Redis string per key under a namespace.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Set(ctx context.Context, key string, value string) error {
	return d.client.WithContext(ctx).Set(d.getFullKey(key), value, d.ttl).Err()
}

func (d *Driver) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := d.client.WithContext(ctx).Get(d.getFullKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}

	return val, true, nil
}

func (d *Driver) Delete(ctx context.Context, key string) error {
	return d.client.WithContext(ctx).Del(d.getFullKey(key)).Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
