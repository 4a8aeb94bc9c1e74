package calendar

import (
	"testing"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func germanLocalizer() *i18n.Localizer {
	return i18n.NewTranslator("de").Localizer()
}

func TestAbbreviation(t *testing.T) {
	cases := []struct {
		entry calendar.Entry
		want  string
	}{
		{calendar.Entry{Type: calendar.EntryTypeVacation}, "U"},
		{calendar.Entry{Type: calendar.EntryTypeSick}, "K"},
		{calendar.Entry{Type: calendar.EntryTypeMeeting}, "M"},
		{calendar.Entry{Type: calendar.EntryTypeTraining}, "F"},
		{calendar.Entry{Type: calendar.EntryTypeSpecialLeave}, "Ux"},
		{calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(8.0)}, "Le"},
		{calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(7.99)}, "Te"},
		{calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(6.0)}, "Te"},
		{calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(5.5)}, "Ue"},
		{calendar.Entry{Type: calendar.EntryTypeWorkedTime}, "?"},
		{calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(0.0)}, "?"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Abbreviation(c.entry), "%+v", c.entry)
	}
}

func TestPalette_Color(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, "#9df09d", p.Color(calendar.Entry{Type: calendar.EntryTypeVacation}))
	assert.Equal(t, "#000000", p.Color(calendar.Entry{Type: calendar.EntryTypeSick}))
	assert.Equal(t, "#98c1f2", p.Color(calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(9.0)}))
	assert.Equal(t, "#f7d560", p.Color(calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(6.5)}))
	assert.Equal(t, "#f2a19e", p.Color(calendar.Entry{Type: calendar.EntryTypeWorkedTime}))

	custom := p.WithOverrides(map[string]string{ColorVacation: "#00ff00", "unknown": "#123456", ColorSick: " "})
	assert.Equal(t, "#00ff00", custom.Color(calendar.Entry{Type: calendar.EntryTypeVacation}))
	assert.Equal(t, "#000000", custom.Color(calendar.Entry{Type: calendar.EntryTypeSick}))
	assert.NotContains(t, custom, "unknown")
	assert.Equal(t, "#9df09d", p[ColorVacation])
}

func TestTooltip(t *testing.T) {
	loc := germanLocalizer()
	approved := calendar.EntryStatusApproved

	assert.Equal(t, "Urlaub - genehmigt", Tooltip(loc, calendar.Entry{Type: calendar.EntryTypeVacation, Status: &approved}))
	assert.Equal(t, "Arbeitszeit (8.5h)", Tooltip(loc, calendar.Entry{Type: calendar.EntryTypeWorkedTime, Hours: ptr(8.5)}))
	assert.Equal(t, "Meeting: Team sync", Tooltip(loc, calendar.Entry{Type: calendar.EntryTypeMeeting, Title: ptr("Team sync")}))
}

func TestGridBuilder_Cell(t *testing.T) {
	g := GridBuilder{Palette: DefaultPalette(), Localizer: germanLocalizer()}

	empty := g.Cell("2024-12-02", false, nil)
	assert.Empty(t, empty.Entries)
	assert.Empty(t, empty.Color)
	assert.Zero(t, empty.Overflow)

	requested := calendar.EntryStatusRequested
	entries := []calendar.Entry{
		{UserID: "1", Date: "2024-12-02", Type: calendar.EntryTypeSick, Status: &requested},
		{UserID: "1", Date: "2024-12-02", Type: calendar.EntryTypeMeeting},
		{UserID: "1", Date: "2024-12-02", Type: calendar.EntryTypeTraining},
		{UserID: "1", Date: "2024-12-02", Type: calendar.EntryTypeMeeting},
		{UserID: "1", Date: "2024-12-02", Type: calendar.EntryTypeMeeting},
	}
	cell := g.Cell("2024-12-02", false, entries)
	assert.Len(t, cell.Entries, 3)
	assert.Equal(t, 2, cell.Overflow)
	assert.Equal(t, "+2 mehr", cell.OverflowLabel)
	assert.Equal(t, "K", cell.Abbreviation)
	assert.Equal(t, "#000000", cell.Color)
	assert.Equal(t, "#ffffff", cell.TextColor)
	assert.True(t, cell.Dimmed)
	assert.Contains(t, cell.Tooltip, "Krank - beantragt")
}

func TestGridBuilder_Rows(t *testing.T) {
	g := GridBuilder{Palette: DefaultPalette(), Localizer: germanLocalizer(), MaxVisible: 3}
	dates, err := GenerateDateRange(calendar.RangeMonth, day("2024-12-01"))
	require.NoError(t, err)

	index := BuildMultiIndex([]calendar.Entry{{UserID: "1", Date: "2024-12-23", Type: calendar.EntryTypeVacation}})
	rows := g.Rows([]GridUser{{ID: "1", Name: "Max Mustermann"}, {ID: "2", Name: "Anna Admin"}}, dates, index)

	require.Len(t, rows, 2)
	require.Len(t, rows[0].Cells, 31)
	assert.Equal(t, "U", rows[0].Cells[22].Abbreviation)
	assert.Equal(t, "2024-12-23", rows[0].Cells[22].Date)
	assert.True(t, rows[0].Cells[0].IsWeekend) // 2024-12-01 is a Sunday
	assert.Empty(t, rows[1].Cells[22].Abbreviation)
}

func TestPalette_Legend(t *testing.T) {
	legend := DefaultPalette().Legend(germanLocalizer())
	require.Len(t, legend, 8)
	assert.Equal(t, "Urlaub", legend[0].Label)
	assert.Equal(t, "#9df09d", legend[0].Color)
}
