package constants

// Session and request context keys
const (
	SessionCookieName = "team_task_session"
	ContextKeyUserID  = "user_id"
	ContextKeyActor   = "actor"
)

// Validation limits
const (
	MinPasswordLength     = 6
	MinTeamPasswordLength = 4
	MaxTeamNameLength     = 255
	MinDisplayNameLength  = 2
	MaxDisplayNameLength  = 100
	MaxTaskTitleLength    = 255
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// MaxAIGeneratedTasks caps the number of drafts accepted from the model.
const MaxAIGeneratedTasks = 20
