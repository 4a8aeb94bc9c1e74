package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/team"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/utils"
)

// Options tune the calendar service. Zero values fall back to defaults.
type Options struct {
	DefaultVacationDays int
	ClipVacationToYear  bool
	MaxCellEntries      int
	CacheEnabled        bool
	CacheSize           int
	Colors              map[string]string
	Location            *time.Location
}

type CalendarService struct {
	leaves      calendar.LeaveRepository
	timeRecords calendar.TimeRecordRepository
	reminders   calendar.ReminderRepository
	users       user.UserRepository
	teams       team.TeamRepository
	translator  *i18n.Translator
	palette     Palette
	opts        Options
	cache       *entryCache
	now         func() time.Time
}

func NewCalendarService(
	leaves calendar.LeaveRepository,
	timeRecords calendar.TimeRecordRepository,
	reminders calendar.ReminderRepository,
	users user.UserRepository,
	teams team.TeamRepository,
	translator *i18n.Translator,
	opts Options,
) *CalendarService {
	if opts.DefaultVacationDays <= 0 {
		opts.DefaultVacationDays = user.DefaultVacationDays
	}
	if opts.MaxCellEntries <= 0 {
		opts.MaxCellEntries = DefaultMaxCellEntries
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &CalendarService{
		leaves:      leaves,
		timeRecords: timeRecords,
		reminders:   reminders,
		users:       users,
		teams:       teams,
		translator:  translator,
		palette:     DefaultPalette().WithOverrides(opts.Colors),
		opts:        opts,
		cache:       newEntryCache(opts.CacheSize),
		now:         time.Now,
	}
}

// Invalidate retires every memoized aggregation.
func (s *CalendarService) Invalidate() {
	s.cache.Invalidate()
	slog.Debug("calendar cache invalidated", "version", s.cache.Version())
}

func (s *CalendarService) today() time.Time {
	return utils.Day(s.now().In(s.opts.Location))
}

func (s *CalendarService) DateRange(ctx context.Context, req calendar.DateRangeRequest) (calendar.DateRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.DateRangeResponse{}, err
	}
	ref, _ := utils.ParseDate(req.Date)
	dates, err := GenerateDateRange(calendar.RangeView(req.View), ref)
	if err != nil {
		return calendar.DateRangeResponse{}, err
	}
	return calendar.DateRangeResponse{View: req.View, Dates: formatDates(dates), Count: len(dates)}, nil
}

func (s *CalendarService) Entries(ctx context.Context, req calendar.EntriesRequest) ([]calendar.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.monthEntries(ctx, req, req.ReferenceMonth())
	if err != nil {
		return nil, err
	}
	return FilterEntries(entries, req.FilterMode()), nil
}

func (s *CalendarService) Index(ctx context.Context, req calendar.EntriesRequest) (map[string]calendar.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.monthEntries(ctx, req, req.ReferenceMonth())
	if err != nil {
		return nil, err
	}
	return BuildFilteredIndex(entries, req.FilterMode()), nil
}

func (s *CalendarService) Grid(ctx context.Context, req calendar.GridRequest) (calendar.GridResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.GridResponse{}, err
	}
	ref := req.ReferenceMonth()
	rangeView := calendar.RangeView(req.Range)

	dates, err := GenerateDateRange(rangeView, ref)
	if err != nil {
		return calendar.GridResponse{}, err
	}

	months := []time.Time{ref}
	if rangeView == calendar.RangeYear {
		months = months[:0]
		for m := time.January; m <= time.December; m++ {
			months = append(months, time.Date(ref.Year(), m, 1, 0, 0, 0, 0, time.UTC))
		}
	}

	var entries []calendar.Entry
	for _, m := range months {
		monthly, err := s.monthEntries(ctx, req.EntriesRequest, m)
		if err != nil {
			return calendar.GridResponse{}, err
		}
		entries = append(entries, monthly...)
	}

	users, err := s.visibleUsers(ctx, calendar.ViewMode(req.ViewMode), req.CurrentUserID, req.TeamID)
	if err != nil {
		return calendar.GridResponse{}, err
	}

	loc := s.translator.Localizer(req.Languages...)
	builder := GridBuilder{Palette: s.palette, Localizer: loc, MaxVisible: s.opts.MaxCellEntries}
	index := BuildMultiIndex(FilterEntries(entries, req.FilterMode()))

	return calendar.GridResponse{
		Range:  req.Range,
		Dates:  formatDates(dates),
		Rows:   builder.Rows(users, dates, index),
		Legend: s.palette.Legend(loc),
	}, nil
}

func (s *CalendarService) MonthDays(ctx context.Context, req calendar.EntriesRequest) ([]calendar.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	q, err := s.query(ctx, req, req.ReferenceMonth())
	if err != nil {
		return nil, err
	}

	start, end := MonthWindow(q.ReferenceMonth)
	snap, err := s.snapshot(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	if q.ViewMode == calendar.ViewModeTeam {
		users, err := s.visibleUsers(ctx, q.ViewMode, q.CurrentUserID, req.TeamID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		if snap.TimeRecords, err = s.timeRecords.GetForUsers(ctx, ids, start, end); err != nil {
			return nil, fmt.Errorf("failed to get team time records: %w", err)
		}
	}

	entries, err := s.monthEntries(ctx, req, q.ReferenceMonth)
	if err != nil {
		return nil, err
	}

	return BuildMonthDays(snap, q, s.today(), FilterEntries(entries, req.FilterMode())), nil
}

func (s *CalendarService) YearOverview(ctx context.Context, req calendar.YearOverviewRequest) (calendar.YearOverviewResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.YearOverviewResponse{}, err
	}

	users, err := s.visibleUsers(ctx, calendar.ViewMode(req.ViewMode), req.CurrentUserID, req.TeamID)
	if err != nil {
		return calendar.YearOverviewResponse{}, err
	}

	// Week 1 may start in December and week 53 may end in January.
	start := WeekStart(req.Year, 1)
	end := WeekStart(req.Year, WeeksPerYear).AddDate(0, 0, 6)
	leaves, err := s.leaves.ListOverlapping(ctx, start, end)
	if err != nil {
		return calendar.YearOverviewResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return BuildYearOverview(req.Year, users, leaves), nil
}

func (s *CalendarService) VacationStats(ctx context.Context, req calendar.VacationStatsRequest) (calendar.VacationStats, error) {
	if err := req.Validate(); err != nil {
		return calendar.VacationStats{}, err
	}
	if req.RequesterID != "" && req.RequesterID != req.UserID {
		if err := s.authorizeUserView(ctx, req.RequesterID, req.UserID); err != nil {
			return calendar.VacationStats{}, err
		}
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return calendar.VacationStats{}, fmt.Errorf("failed to get user: %w", err)
	}
	requests, err := s.leaves.GetByUserID(ctx, req.UserID)
	if err != nil {
		return calendar.VacationStats{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	entitlement := u.AnnualVacationDays(s.opts.DefaultVacationDays)
	return ComputeVacationStats(requests, req.UserID, req.Year, entitlement, s.opts.ClipVacationToYear), nil
}

func (s *CalendarService) ExportICS(ctx context.Context, req calendar.EntriesRequest) ([]byte, error) {
	entries, err := s.Entries(ctx, req)
	if err != nil {
		return nil, err
	}
	return EncodeICS(entries, s.translator.Localizer(req.Languages...), s.now())
}

// authorizeUserView lets admins see everyone and team leads see their
// members.
func (s *CalendarService) authorizeUserView(ctx context.Context, viewerID, targetID string) error {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if viewer.IsAdmin() {
		return nil
	}
	teams, err := s.teams.ListByLead(ctx, viewerID)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		if t.IsMember(targetID) {
			return nil
		}
	}
	return calendar.ErrUserAccessDenied
}

// monthEntries returns the unfiltered aggregation of one month, memoized.
func (s *CalendarService) monthEntries(ctx context.Context, req calendar.EntriesRequest, month time.Time) ([]calendar.Entry, error) {
	key := cacheKey{
		viewMode: calendar.ViewMode(req.ViewMode),
		userID:   req.CurrentUserID,
		month:    month.Format(utils.MonthLayout),
		pending:  req.IncludePending,
		version:  s.cache.Version(),
	}
	if req.TeamID != nil && key.viewMode == calendar.ViewModeTeam {
		key.teamID = *req.TeamID
	}
	if s.opts.CacheEnabled {
		if entries, ok := s.cache.get(key); ok {
			return entries, nil
		}
	}

	q, err := s.query(ctx, req, month)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, q, utils.StartOfMonth(month), utils.EndOfMonth(month))
	if err != nil {
		return nil, err
	}
	entries := Aggregate(snap, q)

	if s.opts.CacheEnabled {
		s.cache.put(key, entries)
	}
	return entries, nil
}

func (s *CalendarService) query(ctx context.Context, req calendar.EntriesRequest, month time.Time) (Query, error) {
	q := Query{
		ViewMode:       calendar.ViewMode(req.ViewMode),
		CurrentUserID:  req.CurrentUserID,
		ReferenceMonth: utils.StartOfMonth(month),
		IncludePending: req.IncludePending,
	}
	if q.ViewMode == calendar.ViewModeTeam && req.TeamID != nil {
		members, err := s.teamMembers(ctx, *req.TeamID)
		if err != nil {
			return Query{}, err
		}
		q.Members = members
	}
	return q, nil
}

// snapshot reads the stores for [start, end]. Time records are loaded for the
// current user only; team time records are a month-view concern.
func (s *CalendarService) snapshot(ctx context.Context, q Query, start, end time.Time) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Leaves, err = s.leaves.ListOverlapping(ctx, start, end); err != nil {
		return Snapshot{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	if q.ViewMode == calendar.ViewModePersonal && q.CurrentUserID != "" {
		if snap.TimeRecords, err = s.timeRecords.GetForPeriod(ctx, q.CurrentUserID, start, end); err != nil {
			return Snapshot{}, fmt.Errorf("failed to get time records: %w", err)
		}
	}
	if snap.Reminders, err = s.reminders.ListActiveInRange(ctx, start, end); err != nil {
		return Snapshot{}, fmt.Errorf("failed to list reminders: %w", err)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list users: %w", err)
	}
	snap.UserNames = make(map[string]string, len(users))
	for _, u := range users {
		snap.UserNames[u.ID] = u.DisplayName()
	}
	return snap, nil
}

func (s *CalendarService) teamMembers(ctx context.Context, teamID string) (map[string]struct{}, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	members := make(map[string]struct{})
	for _, id := range t.Members() {
		members[id] = struct{}{}
	}
	return members, nil
}

// visibleUsers returns the grid rows: the current user in personal view,
// the team's members or everyone in team view.
func (s *CalendarService) visibleUsers(ctx context.Context, mode calendar.ViewMode, currentUserID string, teamID *string) ([]GridUser, error) {
	var users []user.User
	var err error

	switch {
	case mode == calendar.ViewModePersonal:
		if currentUserID == "" {
			return []GridUser{}, nil
		}
		var u user.User
		if u, err = s.users.GetByID(ctx, currentUserID); err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		users = []user.User{u}
	case teamID != nil:
		var t team.Team
		if t, err = s.teams.GetByID(ctx, *teamID); err != nil {
			return nil, fmt.Errorf("failed to get team: %w", err)
		}
		if users, err = s.users.ListByIDs(ctx, t.Members()); err != nil {
			return nil, fmt.Errorf("failed to list team members: %w", err)
		}
	default:
		if users, err = s.users.List(ctx); err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
	}

	out := make([]GridUser, len(users))
	for i, u := range users {
		out[i] = GridUser{ID: u.ID, Name: u.DisplayName()}
	}
	return out, nil
}

var _ calendar.CalendarService = (*CalendarService)(nil)
var _ calendar.Invalidator = (*CalendarService)(nil)
