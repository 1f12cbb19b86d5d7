// File: internal/weakref/weakref.go
// Package weakref provides an upgradeable weak reference, used by the
// reactor so a Timer's back-reference to its owning api.EventReceiver never
// keeps that receiver alive.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No third-party library in the retrieved corpus offers weak references, so
// this wraps the standard library's own weak.Pointer rather than hand-rolling
// one: it is the one concern where stdlib is unambiguously the right tool,
// not a fallback.
package weakref

import "weak"

// Ref is an upgradeable weak reference to a value of type T.
type Ref[T any] struct {
	ptr weak.Pointer[T]
	set bool
}

// New returns a weak reference to target.
func New[T any](target *T) Ref[T] {
	return Ref[T]{ptr: weak.Make(target), set: true}
}

// Upgrade returns target and true if it has not yet been collected, or the
// zero value and false otherwise.
func (r Ref[T]) Upgrade() (*T, bool) {
	if !r.set {
		return nil, false
	}
	target := r.ptr.Value()
	return target, target != nil
}

// Valid reports whether the reference was ever initialized via New.
func (r Ref[T]) Valid() bool {
	return r.set
}
