package infra_redis_init

import (
	"fmt"

	"github.com/go-redis/redis"
)

type Options struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func EstablishConn(opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}
