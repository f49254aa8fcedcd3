// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: bus/bus.go
// Summary: Typed signals for decoupled cross-component notifications.
// Usage: Collaborators expose Signal fields; the main loop and others connect to them.

package bus

import "sync"

// Signal carries notifications of type T to connected receivers.
//
// Delivery is synchronous and in connection order: a receiver invoked during
// Emit completes before Emit returns. Receivers must not assume they run on
// any particular goroutine; in this code base signals are emitted from the
// main loop goroutine only.
type Signal[T any] struct {
	mu        sync.RWMutex
	receivers []func(T)
}

// Connect registers fn to be called on every subsequent Emit.
func (s *Signal[T]) Connect(fn func(T)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivers = append(s.receivers, fn)
}

// Emit delivers value to every connected receiver, in connection order.
func (s *Signal[T]) Emit(value T) {
	s.mu.RLock()
	receivers := make([]func(T), len(s.receivers))
	copy(receivers, s.receivers)
	s.mu.RUnlock()
	for _, fn := range receivers {
		fn(value)
	}
}

// Len reports the number of connected receivers.
func (s *Signal[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receivers)
}
