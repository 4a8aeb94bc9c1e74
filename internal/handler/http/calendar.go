package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	Range(w http.ResponseWriter, r *http.Request)
	Entries(w http.ResponseWriter, r *http.Request)
	Index(w http.ResponseWriter, r *http.Request)
	Grid(w http.ResponseWriter, r *http.Request)
	Days(w http.ResponseWriter, r *http.Request)
	Year(w http.ResponseWriter, r *http.Request)
	MyVacationStats(w http.ResponseWriter, r *http.Request)
	UserVacationStats(w http.ResponseWriter, r *http.Request)
	ExportICS(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
	loc             *time.Location
	now             func() time.Time
}

// NewCalendarHandler resolves default months, dates and years in loc.
// A nil loc means UTC.
func NewCalendarHandler(calendarService calendar.CalendarService, loc *time.Location) CalendarHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &calendarHandlerImpl{calendarService: calendarService, loc: loc, now: time.Now}
}

func (h *calendarHandlerImpl) today() time.Time {
	return h.now().In(h.loc)
}

// entriesRequest reads view, month, filter, team_id and include_pending. Month defaults to the
// current month and view to personal.
func (h *calendarHandlerImpl) entriesRequest(r *http.Request) calendar.EntriesRequest {
	q := r.URL.Query()
	req := calendar.EntriesRequest{
		CurrentUserID:  middleware.UserID(r.Context()),
		ViewMode:       q.Get("view"),
		Month:          q.Get("month"),
		Filter:         q.Get("filter"),
		TeamID:         getOptionalQueryParam(r, "team_id"),
		IncludePending: getBoolQueryParam(r, "include_pending"),
		Languages:      requestLanguages(r),
	}
	if req.ViewMode == "" {
		req.ViewMode = string(calendar.ViewModePersonal)
	}
	if req.Month == "" {
		req.Month = h.today().Format("2006-01")
	}
	return req
}

// Range returns the dates of the month or year containing date.
func (h *calendarHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	req := calendar.DateRangeRequest{
		View: r.URL.Query().Get("view"),
		Date: r.URL.Query().Get("date"),
	}
	if req.Date == "" {
		req.Date = h.today().Format("2006-01-02")
	}

	result, err := h.calendarService.DateRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *calendarHandlerImpl) Entries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.calendarService.Entries(r.Context(), h.entriesRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

func (h *calendarHandlerImpl) Index(w http.ResponseWriter, r *http.Request) {
	index, err := h.calendarService.Index(r.Context(), h.entriesRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, index)
}

func (h *calendarHandlerImpl) Grid(w http.ResponseWriter, r *http.Request) {
	req := calendar.GridRequest{
		EntriesRequest: h.entriesRequest(r),
		Range:          r.URL.Query().Get("range"),
	}
	if req.Range == "" {
		req.Range = string(calendar.RangeMonth)
	}

	grid, err := h.calendarService.Grid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grid)
}

func (h *calendarHandlerImpl) Days(w http.ResponseWriter, r *http.Request) {
	days, err := h.calendarService.MonthDays(r.Context(), h.entriesRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, days)
}

func (h *calendarHandlerImpl) Year(w http.ResponseWriter, r *http.Request) {
	req := calendar.YearOverviewRequest{
		CurrentUserID: middleware.UserID(r.Context()),
		ViewMode:      r.URL.Query().Get("view"),
		Year:          getIntQueryParam(r, "year", h.today().Year()),
		TeamID:        getOptionalQueryParam(r, "team_id"),
	}
	if req.ViewMode == "" {
		req.ViewMode = string(calendar.ViewModePersonal)
	}

	overview, err := h.calendarService.YearOverview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overview)
}

func (h *calendarHandlerImpl) MyVacationStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	h.vacationStats(w, r, userID, userID)
}

// UserVacationStats is restricted to admins and leads of the user's team.
func (h *calendarHandlerImpl) UserVacationStats(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")
	if targetID == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}
	h.vacationStats(w, r, middleware.UserID(r.Context()), targetID)
}

func (h *calendarHandlerImpl) vacationStats(w http.ResponseWriter, r *http.Request, requesterID, userID string) {
	req := calendar.VacationStatsRequest{
		RequesterID: requesterID,
		UserID:      userID,
		Year:        getIntQueryParam(r, "year", h.today().Year()),
	}

	stats, err := h.calendarService.VacationStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// ExportICS serves the month's entries as an iCalendar attachment.
func (h *calendarHandlerImpl) ExportICS(w http.ResponseWriter, r *http.Request) {
	req := h.entriesRequest(r)

	data, err := h.calendarService.ExportICS(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="calendar-%s-%s.ics"`, req.ViewMode, req.Month))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write ics export", "error", err)
	}
}
