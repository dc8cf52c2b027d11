package saft

// Field holds a mandatory value that starts unset. The schema has no
// sensible defaults for most mandatory elements, so "never set" must be
// distinguishable from the zero value.
type Field[T any] struct {
	value T
	set   bool
}

// Set stores v and marks the field as set.
func (f *Field[T]) Set(v T) {
	f.value = v
	f.set = true
}

// Get returns the stored value, or the zero value when unset.
func (f Field[T]) Get() T {
	return f.value
}

// IsSet reports whether Set was called.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Unset clears the field.
func (f *Field[T]) Unset() {
	var zero T
	f.value = zero
	f.set = false
}

// Ptr returns a pointer to a copy of the value, nil when unset.
func (f Field[T]) Ptr() *T {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}
