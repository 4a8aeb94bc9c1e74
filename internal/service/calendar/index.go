package calendar

import (
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
)

// BuildIndex keys entries by "userId-date". On collision the later entry
// wins.
func BuildIndex(entries []calendar.Entry) map[string]calendar.Entry {
	index := make(map[string]calendar.Entry, len(entries))
	for _, e := range entries {
		index[e.Key()] = e
	}
	return index
}

// FilterEntries keeps the entries matching the filter, in input order.
func FilterEntries(entries []calendar.Entry, filter calendar.FilterMode) []calendar.Entry {
	out := make([]calendar.Entry, 0, len(entries))
	for _, e := range entries {
		if filter.Keep(e.Type) {
			out = append(out, e)
		}
	}
	return out
}

// BuildFilteredIndex applies the filter before indexing.
func BuildFilteredIndex(entries []calendar.Entry, filter calendar.FilterMode) map[string]calendar.Entry {
	return BuildIndex(FilterEntries(entries, filter))
}

// BuildMultiIndex keys entries by "userId-date" and keeps every entry of a
// cell in input order.
func BuildMultiIndex(entries []calendar.Entry) map[string][]calendar.Entry {
	index := make(map[string][]calendar.Entry)
	for _, e := range entries {
		key := e.Key()
		index[key] = append(index[key], e)
	}
	return index
}
