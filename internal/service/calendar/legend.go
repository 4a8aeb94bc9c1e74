package calendar

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
)

// Color keys accepted in the settings file.
const (
	ColorVacation     = "vacation"
	ColorSick         = "sick"
	ColorMeeting      = "meeting"
	ColorTraining     = "training"
	ColorSpecialLeave = "special_leave"
	ColorWorkedFull   = "worked_time_full"
	ColorWorkedPart   = "worked_time_part"
	ColorWorkedShort  = "worked_time_short"
	textColorOnDark   = "#ffffff"
	textColorOnLight  = "#000000"
	fullDayHours      = 8.0
	partDayHours      = 6.0
)

// Palette maps color keys to hex colors.
type Palette map[string]string

func DefaultPalette() Palette {
	return Palette{
		ColorVacation:     "#9df09d",
		ColorSick:         "#000000",
		ColorMeeting:      "#5b8df6",
		ColorTraining:     "#ffc966",
		ColorSpecialLeave: "#f55959",
		ColorWorkedFull:   "#98c1f2",
		ColorWorkedPart:   "#f7d560",
		ColorWorkedShort:  "#f2a19e",
	}
}

// WithOverrides returns a copy of p with known keys replaced. Unknown keys
// and empty values are ignored.
func (p Palette) WithOverrides(overrides map[string]string) Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		if _, ok := out[k]; ok && strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// workTier buckets worked hours. Missing or zero hours fall in the lowest tier.
func workTier(hours *float64) string {
	switch {
	case hours == nil || *hours == 0:
		return ""
	case *hours >= fullDayHours:
		return ColorWorkedFull
	case *hours >= partDayHours:
		return ColorWorkedPart
	default:
		return ColorWorkedShort
	}
}

// Color returns the swatch of an entry.
func (p Palette) Color(e calendar.Entry) string {
	switch e.Type {
	case calendar.EntryTypeVacation:
		return p[ColorVacation]
	case calendar.EntryTypeSick:
		return p[ColorSick]
	case calendar.EntryTypeMeeting:
		return p[ColorMeeting]
	case calendar.EntryTypeTraining:
		return p[ColorTraining]
	case calendar.EntryTypeSpecialLeave:
		return p[ColorSpecialLeave]
	case calendar.EntryTypeWorkedTime:
		if tier := workTier(e.Hours); tier != "" {
			return p[tier]
		}
		return p[ColorWorkedShort]
	}
	return ""
}

// Abbreviation returns the short cell code of an entry.
func Abbreviation(e calendar.Entry) string {
	switch e.Type {
	case calendar.EntryTypeVacation:
		return "U"
	case calendar.EntryTypeSick:
		return "K"
	case calendar.EntryTypeMeeting:
		return "M"
	case calendar.EntryTypeTraining:
		return "F"
	case calendar.EntryTypeSpecialLeave:
		return "Ux"
	case calendar.EntryTypeWorkedTime:
		switch workTier(e.Hours) {
		case ColorWorkedFull:
			return "Le"
		case ColorWorkedPart:
			return "Te"
		case ColorWorkedShort:
			return "Ue"
		default:
			return "?"
		}
	}
	return ""
}

// TextColor is white on sick cells, black elsewhere.
func TextColor(e calendar.Entry) string {
	if e.Type == calendar.EntryTypeSick {
		return textColorOnDark
	}
	return textColorOnLight
}

var typeLabelKeys = map[calendar.EntryType]string{
	calendar.EntryTypeVacation:     i18n.KeyEntryVacation,
	calendar.EntryTypeSick:         i18n.KeyEntrySick,
	calendar.EntryTypeMeeting:      i18n.KeyEntryMeeting,
	calendar.EntryTypeTraining:     i18n.KeyEntryTraining,
	calendar.EntryTypeSpecialLeave: i18n.KeyEntrySpecialLeave,
	calendar.EntryTypeWorkedTime:   i18n.KeyEntryWorkedTime,
}

var statusLabelKeys = map[calendar.EntryStatus]string{
	calendar.EntryStatusRequested: i18n.KeyStatusRequested,
	calendar.EntryStatusApproved:  i18n.KeyStatusApproved,
	calendar.EntryStatusRejected:  i18n.KeyStatusRejected,
}

// TypeLabel is the localized name of an entry type.
func TypeLabel(loc *i18n.Localizer, t calendar.EntryType) string {
	if key, ok := typeLabelKeys[t]; ok {
		return loc.Msg(key)
	}
	return string(t)
}

// Tooltip renders "Label", "Label (8.5h)" for worked time and appends
// " - status" when the entry carries one.
func Tooltip(loc *i18n.Localizer, e calendar.Entry) string {
	var b strings.Builder
	b.WriteString(TypeLabel(loc, e.Type))
	if e.Type == calendar.EntryTypeWorkedTime && e.Hours != nil && *e.Hours != 0 {
		b.WriteString(" (")
		b.WriteString(strconv.FormatFloat(*e.Hours, 'f', -1, 64))
		b.WriteString("h)")
	}
	if e.Title != nil && *e.Title != "" {
		b.WriteString(": ")
		b.WriteString(*e.Title)
	}
	if e.Status != nil {
		b.WriteString(" - ")
		if key, ok := statusLabelKeys[*e.Status]; ok {
			b.WriteString(loc.Msg(key))
		} else {
			b.WriteString(string(*e.Status))
		}
	}
	return b.String()
}

// Legend lists every swatch with its localized label.
func (p Palette) Legend(loc *i18n.Localizer) []calendar.LegendItem {
	items := []struct{ key, label string }{
		{ColorVacation, loc.Msg(i18n.KeyEntryVacation)},
		{ColorSick, loc.Msg(i18n.KeyEntrySick)},
		{ColorMeeting, loc.Msg(i18n.KeyEntryMeeting)},
		{ColorTraining, loc.Msg(i18n.KeyEntryTraining)},
		{ColorSpecialLeave, loc.Msg(i18n.KeyEntrySpecialLeave)},
		{ColorWorkedFull, loc.Msg(i18n.KeyEntryWorkedTime) + " (8h+)"},
		{ColorWorkedPart, loc.Msg(i18n.KeyEntryWorkedTime) + " (6-8h)"},
		{ColorWorkedShort, loc.Msg(i18n.KeyEntryWorkedTime) + " (<6h)"},
	}
	out := make([]calendar.LegendItem, len(items))
	for i, it := range items {
		out[i] = calendar.LegendItem{Key: it.key, Label: it.label, Color: p[it.key]}
	}
	return out
}
