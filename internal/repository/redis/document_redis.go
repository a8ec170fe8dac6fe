package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"propertyapi/internal/repository/document"
)

// DefaultKey holds the listing collection when no key is configured.
const DefaultKey = "propertyapi:listings"

// DocumentRedis keeps the listing document as one string value.
type DocumentRedis struct {
	client goredis.Cmdable
	key    string
}

// NewDocumentRedis returns a backend storing the document under key.
func NewDocumentRedis(client goredis.Cmdable, key string) *DocumentRedis {
	if key == "" {
		key = DefaultKey
	}
	return &DocumentRedis{client: client, key: key}
}

var _ document.Backend = (*DocumentRedis)(nil)

// Connect dials addr and checks it answers PING.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *DocumentRedis) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, document.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save overwrites the value without expiry.
func (r *DocumentRedis) Save(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, 0).Err()
}
