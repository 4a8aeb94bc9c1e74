package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUser_DisplayName(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"structured", User{Name: "ignored", FirstName: strPtr("Anna"), LastName: strPtr("Admin")}, "Anna Admin"},
		{"split name", User{Name: "Max Mustermann"}, "Max Mustermann"},
		{"single word", User{Name: "Lisa"}, "Lisa"},
		{"first only", User{Name: "Tom Klein", FirstName: strPtr("Thomas")}, "Thomas Klein"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.user.DisplayName())
		})
	}
}

func TestUser_AnnualVacationDays(t *testing.T) {
	days := 25
	assert.Equal(t, 25, (&User{VacationDays: &days}).AnnualVacationDays(DefaultVacationDays))
	assert.Equal(t, 30, (&User{}).AnnualVacationDays(DefaultVacationDays))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleEmployee, PermissionCalendarViewTeam))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleAdmin, PermissionLeaveApprove))
	assert.False(t, HasPermission(Role("GUEST"), PermissionCalendarViewOwn))
}
