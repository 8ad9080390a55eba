package domain

// Role represents a user role
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// User represents the authenticated account profile
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Result is the outcome handed back across component boundaries. Failures
// are carried as data, never as panics or errors escaping the component.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK returns a success result
func OK() Result {
	return Result{Success: true}
}

// Fail returns a failure result with a human-readable reason
func Fail(reason string) Result {
	return Result{Success: false, Error: reason}
}
