// Package opt provides a tri-state optional value for partial updates.
// A zero Val is "absent" and leaves the target untouched; Of sets a new
// value; Clear resets the target to its zero value (NULL for nullable
// fields). This is what lets update objects distinguish "not mentioned"
// from "explicitly cleared".
package opt

// Val is an optional field of an update object.
type Val[T any] struct {
	value   T
	set     bool
	cleared bool
}

// Of returns a Val carrying v.
func Of[T any](v T) Val[T] {
	return Val[T]{value: v, set: true}
}

// FromPtr returns an absent Val when p is nil, otherwise Of(*p).
func FromPtr[T any](p *T) Val[T] {
	if p == nil {
		return Val[T]{}
	}
	return Of(*p)
}

// Clear returns a Val that resets the target field.
func Clear[T any]() Val[T] {
	return Val[T]{cleared: true}
}

// IsSet reports whether the Val carries a value.
func (v Val[T]) IsSet() bool { return v.set }

// IsClear reports whether the Val is an explicit clear.
func (v Val[T]) IsClear() bool { return v.cleared }

// IsAbsent reports whether the field was not mentioned at all.
func (v Val[T]) IsAbsent() bool { return !v.set && !v.cleared }

// Value returns the carried value and whether one is set.
func (v Val[T]) Value() (T, bool) {
	return v.value, v.set
}

// Apply merges the Val into dst: set overwrites, clear zeroes, absent is a
// no-op. It reports whether dst was written.
func (v Val[T]) Apply(dst *T) bool {
	switch {
	case v.set:
		*dst = v.value
	case v.cleared:
		var zero T
		*dst = zero
	default:
		return false
	}
	return true
}

// ApplyPtr merges the Val into a nullable destination: set stores a copy of
// the value, clear stores nil, absent is a no-op. It reports whether dst was
// written.
func (v Val[T]) ApplyPtr(dst **T) bool {
	switch {
	case v.set:
		value := v.value
		*dst = &value
	case v.cleared:
		*dst = nil
	default:
		return false
	}
	return true
}
