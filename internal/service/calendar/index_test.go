package calendar

import (
	"testing"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedEntries() []calendar.Entry {
	return []calendar.Entry{
		{UserID: "1", Date: "2024-12-02", Type: calendar.EntryTypeVacation},
		{UserID: "1", Date: "2024-12-03", Type: calendar.EntryTypeSick},
		{UserID: "1", Date: "2024-12-04", Type: calendar.EntryTypeWorkedTime, Hours: ptr(8.0)},
		{UserID: "1", Date: "2024-12-04", Type: calendar.EntryTypeMeeting, Title: ptr("standup")},
		{UserID: "2", Date: "2024-12-04", Type: calendar.EntryTypeWorkedTime, Hours: ptr(5.0)},
	}
}

func TestBuildIndex_LastWriteWins(t *testing.T) {
	index := BuildIndex(mixedEntries())
	assert.Len(t, index, 4)
	assert.Equal(t, calendar.EntryTypeMeeting, index["1-2024-12-04"].Type)
}

func TestBuildMultiIndex_KeepsEveryEntry(t *testing.T) {
	index := BuildMultiIndex(mixedEntries())
	require.Len(t, index["1-2024-12-04"], 2)
	assert.Equal(t, calendar.EntryTypeWorkedTime, index["1-2024-12-04"][0].Type)
	assert.Equal(t, calendar.EntryTypeMeeting, index["1-2024-12-04"][1].Type)

	total := 0
	for _, v := range index {
		total += len(v)
	}
	assert.Equal(t, len(mixedEntries()), total)
}

func TestFilterEntries(t *testing.T) {
	work := FilterEntries(mixedEntries(), calendar.FilterWork)
	require.Len(t, work, 2)
	for _, e := range work {
		assert.Equal(t, calendar.EntryTypeWorkedTime, e.Type)
	}

	leaves := FilterEntries(mixedEntries(), calendar.FilterLeaves)
	require.Len(t, leaves, 2)
	assert.Equal(t, calendar.EntryTypeVacation, leaves[0].Type)
	assert.Equal(t, calendar.EntryTypeSick, leaves[1].Type)

	assert.Len(t, FilterEntries(mixedEntries(), calendar.FilterAll), 5)
}

func TestBuildFilteredIndex(t *testing.T) {
	index := BuildFilteredIndex(mixedEntries(), calendar.FilterWork)
	assert.Len(t, index, 2)
	assert.Equal(t, calendar.EntryTypeWorkedTime, index["1-2024-12-04"].Type)
}
