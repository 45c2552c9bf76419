package cache

// CacheRepository abstracts the calculator result cache so tests and
// redis-less deployments can swap in the in-memory implementation.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
