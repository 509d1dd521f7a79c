package history

import "github.com/chazuruo/hgrep/internal/pattern"

// Matches reports whether every include pattern matches somewhere in the
// entry's text and no exclude pattern does. Empty lists never reject.
func (e Entry) Matches(includes, excludes []*pattern.Pattern) bool {
	return MatchText(e.Text(), includes, excludes)
}

// MatchText applies the include/exclude rule of Entry.Matches to text.
func MatchText(text string, includes, excludes []*pattern.Pattern) bool {
	for _, p := range includes {
		if !p.MatchString(text) {
			return false
		}
	}
	for _, p := range excludes {
		if p.MatchString(text) {
			return false
		}
	}
	return true
}

// Filter returns the entries that match, each with its index in entries.
func Filter(entries []Entry, includes, excludes []*pattern.Pattern) []Indexed {
	var result []Indexed
	for i, e := range entries {
		if e.Matches(includes, excludes) {
			result = append(result, Indexed{Index: i, Entry: e})
		}
	}
	return result
}
