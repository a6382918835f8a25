/*
Package maybe provides an option type for values which may be absent.

It replaces optional-chaining style null checks with an explicit carrier:
fields of builder configurations which may legitimately be unset are typed
Maybe[T] and consumed with WithDefault or Get, documenting the default in
the consuming code instead of scattering nil checks.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package maybe

// Maybe carries an optional value of type T.
// The zero Maybe is Nothing.
type Maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps a present value.
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, tag: true}
}

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust reports whether a value is present.
func (m Maybe[T]) IsJust() bool {
	return m.tag
}

// Get returns the carried value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.tag
}

// WithDefault returns the carried value, or def if absent.
func (m Maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

// Map applies f to a present value and re-wraps the result; Nothing maps
// to Nothing.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a computation which may itself fail.
func AndThen[T, S any](f func(T) Maybe[S], x Maybe[T]) Maybe[S] {
	if v, ok := x.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}
