package constants

// Session
const (
	SessionCookieName = "uniem_session"
	ContextKeyUserID  = "user_id"
)

// Validation
const (
	MinPasswordLength = 8
	EmailDomainSuffix = ".edu.tr"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gamification point awards
const (
	DailyLoginPoints     = 5
	HourlyActivityPoints = 3
)

// Leaderboards
const (
	LeaderboardSize = 10
)

// Audit log retention
const (
	LogRetentionDays = 30
)

// Cron schedules (standard 5-field cron expressions)
const (
	ScheduleLogCleanup   = "0 3 * * *" // nightly at 03:00
	ScheduleLeaderboards = "0 2 * * 0" // Sunday at 02:00
	ScheduleHourlySweep  = "0 * * * *" // every hour on the hour
	ScheduleDailyReset   = "0 0 * * *" // nightly at midnight
)
