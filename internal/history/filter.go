package history

// FilterOptions contains options for preparing a loaded history.
type FilterOptions struct {
	// RemoveDuplicates collapses consecutive entries with the same text.
	RemoveDuplicates bool

	// MaxEntries keeps only the most recent entries (0 = no limit).
	MaxEntries int
}

// FilterEntries applies opts to entries. The input slice is not modified.
func FilterEntries(entries []Entry, opts FilterOptions) []Entry {
	result := entries
	if opts.RemoveDuplicates {
		result = Dedup(result)
	}
	if opts.MaxEntries > 0 {
		result = Last(result, opts.MaxEntries)
	}
	return result
}

// Dedup collapses every run of consecutive entries with identical text,
// keeping the first entry of the run. Non-adjacent duplicates survive.
func Dedup(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}

	result := make([]Entry, 0, len(entries))
	var lastText string
	for i, e := range entries {
		text := e.Text()
		if i > 0 && text == lastText {
			continue
		}
		result = append(result, e)
		lastText = text
	}
	return result
}

// Last returns the final n items of list, or all of them if there are fewer.
func Last[T any](list []T, n int) []T {
	if n <= 0 || len(list) <= n {
		return list
	}
	return list[len(list)-n:]
}
