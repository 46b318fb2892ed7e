// Package storage is the durable string key/value mirror the storefront stores
// write through to. Values are JSON documents owned by their callers.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KeyUser     = "vivero_user"
	KeyProducts = "vivero_products"
)

var ErrCorrupt = errors.New("storage: corrupt value")

type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// LoadJSON decodes key into v. found is false when the key is absent.
// A value that does not decode is reported as ErrCorrupt.
func LoadJSON(ctx context.Context, s Storage, key string, v any) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("storage: get %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func SaveJSON(ctx context.Context, s Storage, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("storage: set %s: %w", key, err)
	}
	return nil
}
