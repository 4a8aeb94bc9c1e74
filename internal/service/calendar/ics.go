package calendar

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
	"github.com/emersion/go-ical"
)

const (
	icsProductID = "-//HRIS Calendar//Export//EN"
	icsVersion   = "2.0"
	icsDomain    = "hris-calendar"
	icsCalName   = "X-WR-CALNAME"
)

// emptyICS is returned when there is nothing to export; the encoder rejects
// calendars without components.
const emptyICS = "BEGIN:VCALENDAR\r\nVERSION:" + icsVersion + "\r\nPRODID:" + icsProductID + "\r\nEND:VCALENDAR\r\n"

// EncodeICS renders entries as all-day events.
func EncodeICS(entries []calendar.Entry, loc *i18n.Localizer, now time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return []byte(emptyICS), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, icsVersion)
	cal.Props.SetText(ical.PropProductID, icsProductID)
	cal.Props.SetText(icsCalName, loc.Msg(i18n.KeyExportCalendarName))

	seen := make(map[string]int)
	for _, e := range entries {
		day, err := utils.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid entry date %q: %w", e.Date, err)
		}

		base := e.UserID + "/" + e.Date + "/" + string(e.Type)
		n := seen[base]
		seen[base] = n + 1

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, base+"/"+strconv.Itoa(n)+"@"+icsDomain)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		event.Props.SetText(ical.PropSummary, summary(loc, e))
		event.Props.SetDate(ical.PropDateTimeStart, day)
		event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
		if e.UserName != "" {
			event.Props.SetText(ical.PropDescription, e.UserName)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode iCalendar data: %w", err)
	}
	return buf.Bytes(), nil
}

func summary(loc *i18n.Localizer, e calendar.Entry) string {
	s := TypeLabel(loc, e.Type)
	if e.UserName != "" {
		s = e.UserName + ": " + s
	}
	if e.Hours != nil && *e.Hours != 0 {
		s += " (" + strconv.FormatFloat(*e.Hours, 'f', -1, 64) + "h)"
	}
	if e.Title != nil && *e.Title != "" {
		s += " - " + *e.Title
	}
	return s
}
