package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

type Handlers struct {
	Calendar     CalendarHandler
	Leave        LeaveHandler
	TimeRecord   TimeRecordHandler
	Reminder     ReminderHandler
	Notification NotificationHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-calendar"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// The event stream authenticates with a short-lived token in the query.
		r.Get("/events", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/events/token", h.Notification.GetSSEToken)

			r.Route("/calendar", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionCalendarViewOwn))
				r.Get("/range", h.Calendar.Range)
				r.Get("/entries", h.Calendar.Entries)
				r.Get("/index", h.Calendar.Index)
				r.Get("/grid", h.Calendar.Grid)
				r.Get("/days", h.Calendar.Days)
				r.Get("/year", h.Calendar.Year)
				r.Get("/export.ics", h.Calendar.ExportICS)
				r.Get("/vacation-stats", h.Calendar.MyVacationStats)
				// Access to other users is decided per target user.
				r.Get("/vacation-stats/{userID}", h.Calendar.UserVacationStats)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/{id}", h.Leave.GetRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewAll))
					r.Get("/", h.Leave.ListRequests)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/time-records", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTimeRecordOwn))
				r.Post("/clock-in", h.TimeRecord.ClockIn)
				r.Post("/clock-out", h.TimeRecord.ClockOut)
				r.Get("/", h.TimeRecord.List)
				r.Get("/stats", h.TimeRecord.MonthlyStats)
			})

			r.Route("/reminders", func(r chi.Router) {
				// Notifications belong to whoever set the reminder.
				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", h.Notification.Upcoming)
					r.Get("/alerts", h.Notification.VacationAlerts)
					r.Post("/{id}/read", h.Notification.MarkAsRead)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReminderManage))
					r.Post("/", h.Reminder.CreateManual)
					r.Get("/settings", h.Reminder.GetSettings)
					r.Put("/settings", h.Reminder.UpdateSettings)
					r.Post("/leave/{id}", h.Reminder.CreateForLeave)
					r.Get("/leave/{id}", h.Reminder.ListForLeave)
					r.Patch("/{id}", h.Reminder.Update)
					r.Delete("/{id}", h.Reminder.Delete)
				})
			})
		})
	})
	return r
}
