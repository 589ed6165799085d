package quiz

// Shuffle permutes items in place with Fisher-Yates and returns them.
func Shuffle[T any](items []T, rng Source) []T {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return items
}
