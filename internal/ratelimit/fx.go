package ratelimit

import (
	"github.com/formbridge/formbridge/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("rate.limit",
	fx.Provide(NewLimiter),
)

func NewLimiter(cfg config.Config, log *zap.Logger) Limiter {
	limitCfg := Config{}.withDefaults()

	if cfg.RedisAddr == "" {
		log.Info("rate limiter using in-process buckets",
			zap.Int("requests", limitCfg.Requests),
			zap.Duration("window", limitCfg.Window),
		)
		return NewMemoryBucket(limitCfg)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	log.Info("rate limiter using redis buckets",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("requests", limitCfg.Requests),
		zap.Duration("window", limitCfg.Window),
	)
	return NewTokenBucket(client, limitCfg)
}
