package agent

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("empty store key")

// Store scopes a Cache to one namespace, so several kinds of values can share
// a backend.
type Store[S any] struct {
	cache     Cache[S]
	namespace string
}

func NewStore[S any](cache Cache[S], namespace string) Store[S] {
	return Store[S]{
		cache:     cache,
		namespace: namespace,
	}
}

func (c Store[S]) key(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return c.namespace + ":" + key, nil
}

func (c Store[S]) Set(ctx context.Context, key string, val S) error {
	k, err := c.key(key)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, k, val)
}

func (c Store[S]) Get(ctx context.Context, key string) (S, bool, error) {
	k, err := c.key(key)
	if err != nil {
		var zero S
		return zero, false, err
	}
	return c.cache.Get(ctx, k)
}

func (c Store[S]) Del(ctx context.Context, key string) error {
	k, err := c.key(key)
	if err != nil {
		return err
	}
	return c.cache.Del(ctx, k)
}

func (c Store[S]) Exists(ctx context.Context, key string) (bool, error) {
	k, err := c.key(key)
	if err != nil {
		return false, err
	}
	return c.cache.Exists(ctx, k)
}
