package types

import "context"

// Loader is the contract between the cache and whatever produces values on a miss.
type Loader interface {

	/*
		Load is called by GetOrLoad when the key is not in memory or has expired.
		1. Cache checks memory → key not found
		2. Cache calls Load(key), once per key even under concurrent callers
		3. Loader computes or fetches the value (dictionary API, DB, ...)
		4. Cache stores the result and returns it

		A returned error is handed back to every waiting caller and nothing is stored.
	*/
	Load(ctx context.Context, key string) (any, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, key string) (any, error)

// Load calls f(ctx, key).
func (f LoaderFunc) Load(ctx context.Context, key string) (any, error) {
	return f(ctx, key)
}
