package cache

import (
	"strconv"
	"time"
)

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get returns the value and true when the key is present and not expired.
	Get(key string) (interface{}, bool)

	// Set stores value for duration. A zero duration uses the store default.
	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)
}

// ProductKey is the cache key of a single product looked up by id.
func ProductKey(id int64) string {
	return "product:id:" + strconv.FormatInt(id, 10)
}
