package history

import (
	"fmt"
	"strings"
	"time"
)

// MinReasonableUnix is the earliest unix time accepted from a timestamp
// marker line (2010-01-01 00:00:00 UTC). Smaller values are treated as
// command text.
const MinReasonableUnix int64 = 1262304000

// TimeLayout formats entry timestamps for display.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultTimestamp is assigned to entries read before any timestamp marker.
func DefaultTimestamp() time.Time {
	return time.Unix(MinReasonableUnix, 0).UTC()
}

// Entry is one logical command from a history file.
type Entry struct {
	// Timestamp is when the command was run, in UTC.
	Timestamp time.Time

	// Lines holds the physical lines of the command. Never empty.
	Lines []string
}

// NewEntry builds an entry from its timestamp and command lines.
func NewEntry(ts time.Time, lines ...string) Entry {
	return Entry{Timestamp: ts.UTC(), Lines: lines}
}

// Text returns the command with its lines joined by newlines.
func (e Entry) Text() string {
	if len(e.Lines) == 1 {
		return e.Lines[0]
	}
	return strings.Join(e.Lines, "\n")
}

// LocalTime formats the timestamp in the local time zone using TimeLayout.
func (e Entry) LocalTime() string {
	return e.Timestamp.Local().Format(TimeLayout)
}

// String renders the entry as "<local time>   <command>".
func (e Entry) String() string {
	return fmt.Sprintf("%s   %s", e.LocalTime(), e.Text())
}

// Indexed pairs an entry with its position in the list it came from.
type Indexed struct {
	Index int
	Entry Entry
}
