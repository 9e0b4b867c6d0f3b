// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "context"

type storeKey struct{}

// WithStore returns a copy of ctx that carries store. Code that
// receives the context recovers it with FromContext, which scopes one
// Store to a logical flow of control without passing it to every call.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// FromContext returns the Store attached by WithStore, if any.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(storeKey{}).(*Store)
	return store, ok && store != nil
}

// MustFromContext returns the Store attached by WithStore. Panics if
// ctx carries none: a missing store is a test wiring bug.
func MustFromContext(ctx context.Context) *Store {
	store, ok := FromContext(ctx)
	if !ok {
		panic("clock: no Store attached to context (use clock.WithStore)")
	}
	return store
}
