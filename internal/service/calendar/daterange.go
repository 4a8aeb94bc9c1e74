package calendar

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// GenerateDateRange returns every date of the reference month or year in
// ascending order, both ends inclusive.
func GenerateDateRange(view calendar.RangeView, ref time.Time) ([]time.Time, error) {
	switch view {
	case calendar.RangeMonth:
		return utils.EachDay(utils.StartOfMonth(ref), utils.EndOfMonth(ref)), nil
	case calendar.RangeYear:
		return utils.EachDay(utils.StartOfYear(ref), utils.EndOfYear(ref)), nil
	default:
		return nil, fmt.Errorf("%w: %q", calendar.ErrInvalidRangeView, view)
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = utils.FormatDate(d)
	}
	return out
}
