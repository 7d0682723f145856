// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains synchronization primitives shared by the bot and its
// HTTP endpoints.
package syncx

import "sync"

// Protect wraps val into [Protected].
func Protect[T any](val T) *Protected[T] { return &Protected[T]{val: val} }

// Protected provides synchronized access to a value of type T.
type Protected[T any] struct {
	mu  sync.RWMutex
	val T
}

// Load returns a copy of the protected value.
func (p *Protected[T]) Load() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.val
}

// Update calls f with a pointer to the protected value under a write lock.
func (p *Protected[T]) Update(f func(*T)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(&p.val)
}

// Lazy represents a lazily computed value.
type Lazy[T any] struct {
	once sync.Once
	val  T
}

// Get returns T, calling f to compute it, if necessary.
func (l *Lazy[T]) Get(f func() T) T {
	l.once.Do(func() { l.val = f() })
	return l.val
}
