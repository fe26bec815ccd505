package patch

// Coalesce returns *ptr when set, fallback otherwise.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalescePtr is Coalesce for optional fields: an absent patch keeps the current pointer.
func CoalescePtr[T any](ptr *T, current *T) *T {
	if ptr != nil {
		return ptr
	}
	return current
}
