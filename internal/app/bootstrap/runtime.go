// Package bootstrap wires shared runtime dependencies for the API binary.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/clinicops/pt-followup/internal/config"
	"github.com/clinicops/pt-followup/internal/gateway"
	"github.com/clinicops/pt-followup/pkg/logging"
)

// BuildRedisClient constructs the Redis client used for the fallback visit
// cache. Returns nil when no address is configured, or when verify is set and
// the server does not answer a ping.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildGateway selects the persistence gateway for visit records. A configured
// web app URL gets the spreadsheet gateway; otherwise records live only in the
// Redis cache via the local gateway. The URL is remembered in the cache so a
// restart without the env var can recover it.
func BuildGateway(ctx context.Context, cfg *appconfig.Config, cache *gateway.Cache, logger *logging.Logger) gateway.Gateway {
	if logger == nil {
		logger = logging.Default()
	}

	url := strings.TrimSpace(cfg.SheetsWebAppURL)
	if url == "" && cache != nil {
		saved, err := cache.LoadScriptURL(ctx)
		if err == nil {
			url = saved
		}
	}

	if url != "" {
		if cache != nil {
			if err := cache.SaveScriptURL(ctx, url); err != nil {
				logger.Warn("failed to persist script url", "error", err)
			}
		}
		gw, err := gateway.NewSheetsGateway(gateway.SheetsConfig{
			WebAppURL: url,
			Timeout:   cfg.SheetsTimeout,
		})
		if err == nil {
			logger.Info("using spreadsheet gateway")
			return gw
		}
		logger.Warn("invalid spreadsheet gateway config", "error", err)
	}

	if cache != nil {
		logger.Info("using local cache gateway")
		return gateway.NewLocalGateway(cache)
	}

	logger.Warn("no gateway configured, visits held in memory only")
	return nil
}
