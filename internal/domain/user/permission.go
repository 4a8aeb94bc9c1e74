package user

type Permission string

const (
	// Calendar
	PermissionCalendarViewOwn  Permission = "calendar.view_own"
	PermissionCalendarViewTeam Permission = "calendar.view_team"
	PermissionVacationStatsAll Permission = "vacation_stats.view_all"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Time tracking
	PermissionTimeRecordOwn Permission = "time_record.own"

	// Reminders
	PermissionReminderManage Permission = "reminder.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionCalendarViewOwn,
		PermissionCalendarViewTeam,
		PermissionVacationStatsAll,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionTimeRecordOwn,
		PermissionReminderManage,
	},
	RoleAdmin: {
		PermissionCalendarViewOwn,
		PermissionCalendarViewTeam,
		PermissionVacationStatsAll,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionTimeRecordOwn,
		PermissionReminderManage,
	},
	RoleEmployee: {
		// The team calendar is visible to everyone
		PermissionCalendarViewOwn,
		PermissionCalendarViewTeam,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionTimeRecordOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
