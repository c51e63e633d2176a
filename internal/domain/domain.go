package domain

import "context"

type Cache[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V)
	GetOrSet(ctx context.Context, key K, newValue func() V) V
	DeleteFunc(ctx context.Context, del func(K, V) bool) int
	Len() int
}
