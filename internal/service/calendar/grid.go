package calendar

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// DefaultMaxCellEntries is how many entries a cell shows before "+N more".
const DefaultMaxCellEntries = 3

// GridUser is one row of the grid.
type GridUser struct {
	ID   string
	Name string
}

// GridBuilder renders users × dates into cells.
type GridBuilder struct {
	Palette    Palette
	Localizer  *i18n.Localizer
	MaxVisible int
}

// Rows builds one row per user and one cell per date. Cells look entries up
// in a one-to-many index so no entry of a user/date pair is lost.
func (g GridBuilder) Rows(users []GridUser, dates []time.Time, index map[string][]calendar.Entry) []calendar.GridRow {
	rows := make([]calendar.GridRow, 0, len(users))
	for _, u := range users {
		cells := make([]calendar.GridCell, 0, len(dates))
		for _, d := range dates {
			date := utils.FormatDate(d)
			cells = append(cells, g.Cell(date, utils.IsWeekend(d), index[calendar.IndexKey(u.ID, date)]))
		}
		rows = append(rows, calendar.GridRow{UserID: u.ID, UserName: u.Name, Cells: cells})
	}
	return rows
}

// Cell renders one user/date pair. The first entry decides abbreviation,
// color and dimming; the tooltip lists every entry.
func (g GridBuilder) Cell(date string, weekend bool, entries []calendar.Entry) calendar.GridCell {
	cell := calendar.GridCell{Date: date, IsWeekend: weekend, Entries: []calendar.Entry{}}
	if len(entries) == 0 {
		return cell
	}

	limit := g.MaxVisible
	if limit <= 0 {
		limit = DefaultMaxCellEntries
	}
	visible := entries
	if len(visible) > limit {
		visible = entries[:limit]
		cell.Overflow = len(entries) - limit
		cell.OverflowLabel = g.Localizer.MsgWith(i18n.KeyOverflowMore, map[string]interface{}{"Count": cell.Overflow})
	}
	cell.Entries = append(cell.Entries, visible...)

	first := entries[0]
	cell.Abbreviation = Abbreviation(first)
	cell.Color = g.Palette.Color(first)
	cell.TextColor = TextColor(first)
	cell.Dimmed = first.Status != nil && *first.Status == calendar.EntryStatusRequested

	tips := make([]string, len(entries))
	for i, e := range entries {
		tips[i] = Tooltip(g.Localizer, e)
	}
	cell.Tooltip = strings.Join(tips, "\n")

	return cell
}
