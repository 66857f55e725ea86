package utils

// Coalesce returns a copy of candidate when it is set, otherwise prev.
func Coalesce[T any](candidate, prev *T) *T {
	if candidate == nil {
		return prev
	}
	v := *candidate
	return &v
}

// CoalesceString returns candidate unless it is empty.
func CoalesceString(candidate, prev string) string {
	if candidate == "" {
		return prev
	}
	return candidate
}

// CoalesceSlice returns candidate unless it has no elements.
func CoalesceSlice[T any](candidate, prev []T) []T {
	if len(candidate) == 0 {
		return prev
	}
	return append([]T(nil), candidate...)
}

// CoalesceValid returns candidate when valid accepts it, otherwise prev.
func CoalesceValid[T comparable](candidate, prev T, valid func(T) bool) T {
	var zero T
	if candidate == zero || !valid(candidate) {
		return prev
	}
	return candidate
}
