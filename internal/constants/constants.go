package constants

// Session and context keys
const (
	SessionCookieName = "campusboard_session"
	ContextKeyUserID  = "user_id"
)

// Password policy
const (
	MinPasswordLength = 8
)

// DueDateLayout is the calendar-date form of a due date, as submitted
// by the task form's date input.
const DueDateLayout = "2006-01-02"
