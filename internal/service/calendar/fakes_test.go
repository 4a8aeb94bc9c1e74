package calendar

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/reminder"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/team"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

type fakeLeaves struct {
	requests []leave.LeaveRequest
	calls    int
}

func (f *fakeLeaves) ListOverlapping(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	f.calls++
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaves) GetByUserID(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTimeRecords struct {
	records []timerecord.TimeRecord
}

func (f *fakeTimeRecords) GetForPeriod(ctx context.Context, userID string, start, end time.Time) ([]timerecord.TimeRecord, error) {
	return f.GetForUsers(ctx, []string{userID}, start, end)
}

func (f *fakeTimeRecords) GetForUsers(ctx context.Context, userIDs []string, start, end time.Time) ([]timerecord.TimeRecord, error) {
	ids := make(map[string]bool)
	for _, id := range userIDs {
		ids[id] = true
	}
	var out []timerecord.TimeRecord
	for _, r := range f.records {
		if ids[r.UserID] && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeReminders struct {
	reminders []reminder.Reminder
}

func (f *fakeReminders) ListActiveInRange(ctx context.Context, start, end time.Time) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range f.reminders {
		if r.IsActive && !r.ReminderDate.Before(start) && !r.ReminderDate.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUsers struct {
	users []user.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) List(ctx context.Context) ([]user.User, error) {
	return f.users, nil
}

func (f *fakeUsers) ListByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, err := f.GetByID(ctx, id); err == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeTeams struct {
	teams []team.Team
}

func (f *fakeTeams) GetByID(ctx context.Context, id string) (team.Team, error) {
	for _, t := range f.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return team.Team{}, team.ErrTeamNotFound
}

func (f *fakeTeams) ListByLead(ctx context.Context, leadID string) ([]team.Team, error) {
	var out []team.Team
	for _, t := range f.teams {
		if t.IsLead(leadID) {
			out = append(out, t)
		}
	}
	return out, nil
}

// christmasVacation is the approved request used across scenarios.
func christmasVacation() leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:        "lr-1",
		UserID:    "1",
		StartDate: day("2024-12-23"),
		EndDate:   day("2024-12-30"),
		Type:      leave.LeaveTypeVacation,
		Status:    leave.LeaveRequestStatusApproved,
	}
}

func closedRecord(userID, date string, hours string) timerecord.TimeRecord {
	return timerecord.TimeRecord{
		ID:         "tr-" + userID + "-" + date,
		UserID:     userID,
		Date:       day(date),
		TimeIn:     "08:00",
		TimeOut:    ptr("17:00"),
		TotalHours: decimal.RequireFromString(hours),
	}
}

func testUsers() []user.User {
	return []user.User{
		{ID: "1", Name: "Max Mustermann", Role: user.RoleEmployee, VacationDays: ptr(30)},
		{ID: "2", Name: "Anna Admin", Role: user.RoleAdmin},
		{ID: "3", Name: "Tom Klein", Role: user.RoleEmployee},
	}
}
