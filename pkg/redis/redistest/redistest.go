// Package redistest starts an in-memory Redis for tests and wraps it in the storefront client.
package redistest

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
)

// New returns a storefront redis client backed by miniredis. Both are closed on test cleanup.
func New(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client, err := redis.New(context.Background(), config.RedisConfig{Address: mr.Addr(), PoolSize: 2}, nil)
	if err != nil {
		mr.Close()
		t.Fatalf("connect miniredis: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}
