package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/hgrep/internal/pattern"
)

func re(t *testing.T, raw string) *pattern.Pattern {
	t.Helper()
	p, err := pattern.Compile("/"+raw+"/", pattern.Sensitive)
	require.NoError(t, err)
	return p
}

func TestEntryMatches(t *testing.T) {
	entry := NewEntry(DefaultTimestamp(), "I am the command", "with many lines. Foobar")
	ps := func(raws ...string) []*pattern.Pattern {
		out := make([]*pattern.Pattern, 0, len(raws))
		for _, r := range raws {
			out = append(out, re(t, r))
		}
		return out
	}

	assert.True(t, entry.Matches(ps("am the", "many"), nil))
	assert.True(t, entry.Matches(nil, nil))
	assert.False(t, entry.Matches(nil, ps("many")))
	assert.False(t, entry.Matches(nil, ps("many", "XXXX")))
	assert.False(t, entry.Matches(ps("am the", "many"), ps("many", "XXXX")))
	assert.False(t, entry.Matches(ps("am the", "XXX"), nil))
	assert.True(t, entry.Matches(ps("am the", "am the"), nil))

	// Matches may span the line break of a multi-line command.
	assert.True(t, entry.Matches(ps(`command\nwith`), nil))
}

func TestMatches_Monotonic(t *testing.T) {
	entries := []Entry{
		NewEntry(DefaultTimestamp(), "git status"),
		NewEntry(DefaultTimestamp(), "git push origin main"),
		NewEntry(DefaultTimestamp(), "kubectl get pods"),
		NewEntry(DefaultTimestamp(), "git pull"),
	}

	base := Filter(entries, []*pattern.Pattern{pattern.Literal("git", pattern.Sensitive)}, nil)
	moreIncludes := Filter(entries, []*pattern.Pattern{
		pattern.Literal("git", pattern.Sensitive),
		pattern.Literal("pu", pattern.Sensitive),
	}, nil)
	moreExcludes := Filter(entries,
		[]*pattern.Pattern{pattern.Literal("git", pattern.Sensitive)},
		[]*pattern.Pattern{pattern.Literal("main", pattern.Sensitive)})

	assert.Len(t, base, 3)
	assert.LessOrEqual(t, len(moreIncludes), len(base))
	assert.LessOrEqual(t, len(moreExcludes), len(base))
	assert.Len(t, moreIncludes, 2)
	assert.Len(t, moreExcludes, 2)
}

func TestFilter_KeepsIndices(t *testing.T) {
	entries := []Entry{
		NewEntry(DefaultTimestamp(), "git status"),
		NewEntry(DefaultTimestamp(), "ls"),
		NewEntry(DefaultTimestamp(), "git log"),
	}

	got := Filter(entries, []*pattern.Pattern{pattern.Literal("GIT", pattern.Insensitive)}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, "git log", got[1].Entry.Text())

	assert.Empty(t, Filter(nil, nil, nil))
}
