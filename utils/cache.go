package utils

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// InsightCache memoizes chat answers for the lifetime of an entry, keyed by
// (user, file, verbatim question). A repeat question on the same file within
// the TTL is served without billing the provider again. Bounded size and TTL
// keep memory flat; eviction simply means the next identical question is
// recomputed. Only the chat path uses it; one-shot insights always regenerate.
type InsightCache struct {
	lru *expirable.LRU[string, string]
}

func NewInsightCache(maxSize int, ttl time.Duration) *InsightCache {
	return &InsightCache{lru: expirable.NewLRU[string, string](maxSize, nil, ttl)}
}

func cacheKey(userID, fileID int64, message string) string {
	return strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(fileID, 10) + ":" + message
}

func (c *InsightCache) Get(userID, fileID int64, message string) (string, bool) {
	return c.lru.Get(cacheKey(userID, fileID, message))
}

func (c *InsightCache) Set(userID, fileID int64, message, answer string) {
	c.lru.Add(cacheKey(userID, fileID, message), answer)
}
