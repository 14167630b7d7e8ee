package cachedstore

// Backend is a cache for encoded field bytes keyed by field name.
type Backend interface {
	// Get retrieves cached field data.
	Get(name string) ([]byte, bool)

	// Set stores field data in the cache.
	Set(name string, data []byte)

	// Stats returns current cache statistics.
	Stats() Stats
}

// Stats describes cache effectiveness.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}
