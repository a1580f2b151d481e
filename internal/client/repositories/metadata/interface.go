package metadata

import (
	"context"
)

// Repository is durable key/value storage for client metadata such as the
// session token and the serialized user profile.
//
// Get on a missing key returns (nil, nil). SetAll writes every pair or none.
// Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
