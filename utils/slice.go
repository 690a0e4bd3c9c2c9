package utils

// Map applies fn to every item, keeping order.
func Map[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, len(items))
	for i := range items {
		out[i] = fn(items[i])
	}
	return out
}

// First returns the first item match accepts.
func First[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// KeyBy indexes items by key. When keys collide the earliest item wins.
func KeyBy[T any, K comparable](items []T, key func(T) K) map[K]T {
	out := make(map[K]T, len(items))
	for _, item := range items {
		k := key(item)
		if _, seen := out[k]; !seen {
			out[k] = item
		}
	}
	return out
}
