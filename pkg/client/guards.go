package client

import "github.com/doctorshift/marketplace-api/internal/models"

// GuardDecision is what a route guard tells the caller to do with a
// navigation attempt.
type GuardDecision int

const (
	// ShowLoading suspends the decision while the session resolves.
	ShowLoading GuardDecision = iota
	Render
	RedirectToLogin
	RedirectToDashboard
)

func (d GuardDecision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect:login"
	default:
		return "redirect:dashboard"
	}
}

// Guard decides whether a view renders for the current session.
type Guard interface {
	Decide(state SessionState, user *models.User) GuardDecision
}

// AuthGuard admits any authenticated user.
type AuthGuard struct{}

func (AuthGuard) Decide(state SessionState, user *models.User) GuardDecision {
	switch state {
	case SessionUninitialized, SessionLoading:
		return ShowLoading
	case SessionAuthenticated:
		return Render
	default:
		return RedirectToLogin
	}
}

// AdminGuard additionally requires the admin role. A non-admin user is
// authenticated but unauthorized, so they bounce to the dashboard rather
// than the login view. A missing role is treated the same as a non-admin
// one.
type AdminGuard struct{}

func (AdminGuard) Decide(state SessionState, user *models.User) GuardDecision {
	switch state {
	case SessionUninitialized, SessionLoading:
		return ShowLoading
	case SessionAuthenticated:
		if user != nil && user.Role == models.RoleAdmin {
			return Render
		}
		return RedirectToDashboard
	default:
		return RedirectToLogin
	}
}
