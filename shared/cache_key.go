package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"

	"courtbook/shared/cache"
	"courtbook/shared/constant"
	"courtbook/shared/dto"

	"github.com/rs/zerolog/log"
)

// BuildCacheKey joins the given parts into a colon-separated cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from the query parameters and
// filters so that each distinct listing query gets its own cache entry.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(map[string]any{
		"params": params,
		"where":  where,
		"args":   args,
	})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key payload")

		return BuildCacheKey(prefix, "all")
	}

	hasher := fnv.New64a()
	_, _ = hasher.Write(payload)

	return BuildCacheKey(prefix, fmt.Sprintf("%x", hasher.Sum64()))
}

// InvalidateCaches drops every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
