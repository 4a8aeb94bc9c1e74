package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/validator"
)

// ============= Request DTOs =============

type DateRangeRequest struct {
	View string `json:"view"`
	Date string `json:"date"`
}

func (r *DateRangeRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.View, []string{string(RangeMonth), string(RangeYear)}) {
		errs.Add("view", "view must be one of: month, year")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	return errs.OrNil()
}

// EntriesRequest selects the aggregated entries of one month.
type EntriesRequest struct {
	CurrentUserID string  `json:"-"`
	ViewMode      string  `json:"view"`
	Month         string  `json:"month"`
	Filter        string  `json:"filter"`
	TeamID        *string `json:"team_id,omitempty"`
	// IncludePending also shows pending leave requests, flagged "requested".
	IncludePending bool `json:"include_pending"`
	// Accept-Language values, most preferred first.
	Languages []string `json:"-"`
}

func (r *EntriesRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.ViewMode, []string{string(ViewModePersonal), string(ViewModeTeam)}) {
		errs.Add("view", "view must be one of: personal, team")
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs.Add("month", "month must be in YYYY-MM format")
	}
	if r.Filter != "" && !validator.IsInSlice(r.Filter, []string{string(FilterAll), string(FilterLeaves), string(FilterWork)}) {
		errs.Add("filter", "filter must be one of: all, leaves, work")
	}
	if r.TeamID != nil && validator.IsEmpty(*r.TeamID) {
		errs.Add("team_id", "team_id must not be empty")
	}
	return errs.OrNil()
}

// ReferenceMonth returns the first day of the requested month. Call after Validate.
func (r *EntriesRequest) ReferenceMonth() time.Time {
	t, _ := validator.IsValidMonth(r.Month)
	return t
}

func (r *EntriesRequest) FilterMode() FilterMode {
	if r.Filter == "" {
		return FilterAll
	}
	return FilterMode(r.Filter)
}

type GridRequest struct {
	EntriesRequest
	Range string `json:"range"`
}

func (r *GridRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.EntriesRequest.Validate(); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}
	if !validator.IsInSlice(r.Range, []string{string(RangeMonth), string(RangeYear)}) {
		errs.Add("range", "range must be one of: month, year")
	}
	return errs.OrNil()
}

type YearOverviewRequest struct {
	CurrentUserID string  `json:"-"`
	ViewMode      string  `json:"view"`
	Year          int     `json:"year"`
	TeamID        *string `json:"team_id,omitempty"`
}

func (r *YearOverviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.ViewMode, []string{string(ViewModePersonal), string(ViewModeTeam)}) {
		errs.Add("view", "view must be one of: personal, team")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year must be between 1970 and 9999")
	}
	return errs.OrNil()
}

type VacationStatsRequest struct {
	RequesterID string `json:"-"`
	UserID      string `json:"user_id"`
	Year        int    `json:"year"`
}

func (r *VacationStatsRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", "year must be between 1970 and 9999")
	}
	return errs.OrNil()
}

// ============= Response DTOs =============

type DateRangeResponse struct {
	View  string   `json:"view"`
	Dates []string `json:"dates"`
	Count int      `json:"count"`
}

// DayResponse is one cell of the 42-day month view.
type DayResponse struct {
	Date            string                          `json:"date"`
	IsToday         bool                            `json:"is_today"`
	IsWeekend       bool                            `json:"is_weekend"`
	IsCurrentMonth  bool                            `json:"is_current_month"`
	Entries         []Entry                         `json:"entries"`
	UserLeaves      []leave.LeaveRequestResponse    `json:"user_leaves"`
	UserTimeRecord  *timerecord.TimeRecordResponse  `json:"user_time_record,omitempty"`
	Leaves          []leave.LeaveRequestResponse    `json:"leaves"`
	TeamTimeRecords []timerecord.TimeRecordResponse `json:"team_time_records,omitempty"`
	Reminders       []reminder.ReminderResponse     `json:"reminders"`
}

type GridResponse struct {
	Range  string       `json:"range"`
	Dates  []string     `json:"dates"`
	Rows   []GridRow    `json:"rows"`
	Legend []LegendItem `json:"legend"`
}

type GridRow struct {
	UserID   string     `json:"user_id"`
	UserName string     `json:"user_name"`
	Cells    []GridCell `json:"cells"`
}

// GridCell shows at most the first few entries of a user/date pair; the
// rest are counted in Overflow.
type GridCell struct {
	Date          string  `json:"date"`
	IsWeekend     bool    `json:"is_weekend"`
	Entries       []Entry `json:"entries"`
	Overflow      int     `json:"overflow"`
	OverflowLabel string  `json:"overflow_label,omitempty"`
	Abbreviation  string  `json:"abbreviation,omitempty"`
	Color         string  `json:"color,omitempty"`
	TextColor     string  `json:"text_color,omitempty"`
	Tooltip       string  `json:"tooltip,omitempty"`
	Dimmed        bool    `json:"dimmed"`
}

type LegendItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type YearOverviewResponse struct {
	Year  int           `json:"year"`
	Users []YearUserRow `json:"users"`
}

type YearUserRow struct {
	UserID   string     `json:"user_id"`
	UserName string     `json:"user_name"`
	Weeks    []YearWeek `json:"weeks"`
}

type YearWeek struct {
	Week      int                          `json:"week"`
	WeekStart string                       `json:"week_start"`
	Leaves    []leave.LeaveRequestResponse `json:"leaves"`
}
