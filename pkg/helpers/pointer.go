package helpers

// Ptr returns a pointer to the provided value.
func Ptr[T any](val T) *T {
	return &val
}

// ValueOr returns the dereferenced value or the provided default if nil.
func ValueOr[T any](val *T, fallback T) T {
	if val == nil {
		return fallback
	}
	return *val
}

// Assign copies *src into *dst when src is set. It is used to apply partial
// update requests.
func Assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
