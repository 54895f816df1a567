package sequence

import "context"

// Repository is the sequence registry. Next must behave as if calls
// are serialized per key: it returns strictly increasing values and no
// two callers ever observe the same result for the same key. A failed
// call must not consume a value; a value consumed by a caller that
// later abandons it leaves a permanent hole, which is tolerated.
type Repository interface {
	// Next atomically increments the counter for key and returns the
	// new value. The first call for a key returns 1.
	Next(ctx context.Context, key string) (int64, error)

	// Current returns the last issued value for key without
	// consuming one. Returns 0 when the key has never been used.
	Current(ctx context.Context, key string) (int64, error)
}
