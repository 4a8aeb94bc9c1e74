package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/response"
)

type TimeRecordHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MonthlyStats(w http.ResponseWriter, r *http.Request)
}

type timeRecordHandlerImpl struct {
	timeRecordService timerecord.TimeRecordService
}

func NewTimeRecordHandler(timeRecordService timerecord.TimeRecordService) TimeRecordHandler {
	return &timeRecordHandlerImpl{timeRecordService: timeRecordService}
}

// ClockIn accepts an optional {"time_in": "HH:MM"} body.
func (h *timeRecordHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req timerecord.ClockInRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r.Context())

	record, err := h.timeRecordService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in", record)
}

// ClockOut accepts an optional {"time_out": "HH:MM", "break_minutes": n} body.
func (h *timeRecordHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req timerecord.ClockOutRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r.Context())

	record, err := h.timeRecordService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out", record)
}

func (h *timeRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := timerecord.PeriodRequest{
		UserID:    middleware.UserID(r.Context()),
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}

	records, err := h.timeRecordService.ListForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func (h *timeRecordHandlerImpl) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	req := timerecord.MonthlyStatsRequest{
		UserID: middleware.UserID(r.Context()),
		Month:  getIntQueryParam(r, "month", 0),
		Year:   getIntQueryParam(r, "year", 0),
	}

	stats, err := h.timeRecordService.MonthlyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}
