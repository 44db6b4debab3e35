package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is the durable single-slot storage contract. Implementations must
// make Set a full overwrite of the previous value.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
