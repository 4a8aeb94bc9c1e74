package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReminderHandler interface {
	CreateManual(w http.ResponseWriter, r *http.Request)
	CreateForLeave(w http.ResponseWriter, r *http.Request)
	ListForLeave(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type reminderHandlerImpl struct {
	reminderService reminder.ReminderService
}

func NewReminderHandler(reminderService reminder.ReminderService) ReminderHandler {
	return &reminderHandlerImpl{reminderService: reminderService}
}

func (h *reminderHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req reminder.CreateManualRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("CreateManual decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ManagerID = middleware.UserID(r.Context())

	created, err := h.reminderService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reminder created successfully", created)
}

// CreateForLeave creates the automatic reminders of a vacation. The body may
// name custom offsets: {"custom_days": [10, 3]}.
func (h *reminderHandlerImpl) CreateForLeave(w http.ResponseWriter, r *http.Request) {
	var req reminder.CreateAutomaticRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("CreateForLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveRequestID = chi.URLParam(r, "id")
	req.ManagerID = middleware.UserID(r.Context())

	created, err := h.reminderService.CreateForVacation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Reminders created successfully", created)
}

func (h *reminderHandlerImpl) ListForLeave(w http.ResponseWriter, r *http.Request) {
	leaveRequestID := chi.URLParam(r, "id")
	if leaveRequestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	reminders, err := h.reminderService.ListForLeave(r.Context(), leaveRequestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, reminders)
}

func (h *reminderHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req reminder.UpdateReminderRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("Update reminder decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.reminderService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reminder updated successfully", updated)
}

func (h *reminderHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "id")
	if reminderID == "" {
		response.BadRequest(w, "Reminder ID is required", nil)
		return
	}

	if err := h.reminderService.Delete(r.Context(), reminderID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reminder deleted successfully", nil)
}

func (h *reminderHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.reminderService.GetSettings(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

func (h *reminderHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req reminder.UpdateSettingsRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ManagerID = middleware.UserID(r.Context())

	settings, err := h.reminderService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Reminder settings updated successfully", settings)
}
