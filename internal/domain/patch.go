package domain

// Field is an optional update for one stored column. An unset Field leaves
// the column alone; a set Field overwrites it, possibly with NULL. Update
// payloads are assembled by merging small fragments built from pure decision
// rules, so each rule stays independently testable and never mutates shared
// state.
type Field[T any] struct {
	set   bool
	value *T
}

// Set returns a Field that writes v.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: &v}
}

// Null returns a Field that writes NULL.
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// IsSet reports whether the field carries an update.
func (f Field[T]) IsSet() bool { return f.set }

// Get returns the pending value (nil means NULL) and whether one is pending.
func (f Field[T]) Get() (*T, bool) { return f.value, f.set }

// or merges two fields with later-wins semantics.
func (f Field[T]) or(next Field[T]) Field[T] {
	if next.set {
		return next
	}
	return f
}

// apply writes the pending value through dst when one is pending.
func apply[T any](f Field[T], dst **T) {
	if f.set {
		*dst = f.value
	}
}

// applyValue writes the pending value into a non-nullable destination; a
// pending NULL is ignored.
func applyValue[T any](f Field[T], dst *T) {
	if f.set && f.value != nil {
		*dst = *f.value
	}
}
