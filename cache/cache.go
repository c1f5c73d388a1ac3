// Package cache provides detection result caching implementations.
//
// Keys are text hashes suffixed with a model revision (see
// guesslang.CacheKey); values are language codes.
package cache

// ResultCache is the interface for detection result caching.
type ResultCache interface {
	// Get retrieves a cached language code. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a language code in the cache.
	Set(key string, value string) error
}

// Enumerable is implemented by caches that can list their live entries.
type Enumerable interface {
	ResultCache
	Entries() (map[string]string, error)
}
