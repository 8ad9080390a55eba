// Package guard decides, before every route transition, whether the current
// session may proceed. Pure: no network calls, no mutation; it trusts
// whatever session state is loaded in memory.
package guard

// Route describes a destination's required capabilities
type Route struct {
	Name          string
	RequiresAuth  bool
	RequiresAdmin bool
	GuestOnly     bool
}

// SessionState is the slice of session the guard reads
type SessionState interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Decision is the guard's verdict
type Decision int

const (
	// Allow lets the transition proceed
	Allow Decision = iota
	// RedirectLogin sends the visitor to the login route
	RedirectLogin
	// RedirectHome sends the visitor to the home route
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Evaluate maps a route and the current session to exactly one decision
func Evaluate(route Route, session SessionState) Decision {
	switch {
	case route.RequiresAuth && !session.IsAuthenticated():
		return RedirectLogin
	case route.RequiresAdmin && session.IsAuthenticated() && !session.IsAdmin():
		return RedirectHome
	case route.GuestOnly && session.IsAuthenticated():
		return RedirectHome
	default:
		return Allow
	}
}
