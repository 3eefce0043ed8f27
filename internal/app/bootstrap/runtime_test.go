package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/clinicops/pt-followup/internal/config"
	"github.com/clinicops/pt-followup/internal/gateway"
	"github.com/clinicops/pt-followup/pkg/logging"
)

func TestBuildRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	t.Run("no address returns nil", func(t *testing.T) {
		client := BuildRedisClient(context.Background(), &appconfig.Config{}, logging.Default(), false)
		assert.Nil(t, client)
	})

	t.Run("verify succeeds against live server", func(t *testing.T) {
		cfg := &appconfig.Config{RedisAddr: mr.Addr()}
		client := BuildRedisClient(context.Background(), cfg, logging.Default(), true)
		require.NotNil(t, client)
		client.Close()
	})

	t.Run("verify fails against dead server", func(t *testing.T) {
		cfg := &appconfig.Config{RedisAddr: "127.0.0.1:1"}
		client := BuildRedisClient(context.Background(), cfg, logging.Default(), true)
		assert.Nil(t, client)
	})
}

func TestBuildGateway(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := gateway.NewCache(client)

	t.Run("url selects spreadsheet gateway", func(t *testing.T) {
		cfg := &appconfig.Config{SheetsWebAppURL: "https://script.example/exec"}
		gw := BuildGateway(context.Background(), cfg, cache, logging.Default())
		_, ok := gw.(*gateway.SheetsGateway)
		assert.True(t, ok)
	})

	t.Run("url is remembered in the cache", func(t *testing.T) {
		saved, err := cache.LoadScriptURL(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://script.example/exec", saved)

		// A restart without the env var recovers the saved URL.
		gw := BuildGateway(context.Background(), &appconfig.Config{}, cache, logging.Default())
		_, ok := gw.(*gateway.SheetsGateway)
		assert.True(t, ok)
	})

	t.Run("no url falls back to local gateway", func(t *testing.T) {
		mr.FlushAll()
		gw := BuildGateway(context.Background(), &appconfig.Config{}, cache, logging.Default())
		_, ok := gw.(*gateway.LocalGateway)
		assert.True(t, ok)
	})

	t.Run("nothing configured returns nil", func(t *testing.T) {
		gw := BuildGateway(context.Background(), &appconfig.Config{}, nil, logging.Default())
		assert.Nil(t, gw)
	})
}
