package rules

// minBy returns the item with the smallest key. Ties keep the earliest
// item, so the result follows the input's iteration order.
func minBy[T any](items []T, key func(T) int) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestKey := key(best)
	for _, item := range items[1:] {
		if k := key(item); k < bestKey {
			best, bestKey = item, k
		}
	}
	return best, true
}

// first returns the leading item, if any.
func first[T any](items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[0], true
}
