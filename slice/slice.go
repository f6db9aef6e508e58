// Maybe use package slices instead

package slice

func Map[T any, U any](input []T, pred func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = pred(v)
	}
	return result
}

func Filter[T any](input []T, pred func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if pred(v) {
			result = append(result, v)
		}
	}
	return result
}

// MinBy returns the first element with the smallest key.
func MinBy[T any](input []T, key func(T) float64) (T, bool) {
	var zero T
	if len(input) == 0 {
		return zero, false
	}
	best := input[0]
	for _, v := range input[1:] {
		if key(v) < key(best) {
			best = v
		}
	}
	return best, true
}

// MaxBy returns the first element with the largest key.
func MaxBy[T any](input []T, key func(T) float64) (T, bool) {
	var zero T
	if len(input) == 0 {
		return zero, false
	}
	best := input[0]
	for _, v := range input[1:] {
		if key(v) > key(best) {
			best = v
		}
	}
	return best, true
}
