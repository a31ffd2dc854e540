package memcache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"tripwise/internal/config"
	mem "tripwise/pkg/memcache"
)

var Module = fx.Provide(provideProviderCache)

func provideProviderCache(client *redis.Client, providers config.ProvidersConfig) mem.ProviderCache {
	return mem.NewProviderCache(client, providers.CacheTTL)
}
