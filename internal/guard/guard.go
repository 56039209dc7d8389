// Package guard decides whether a session may view a page.
package guard

import (
	"net/http"
	"travel-journal-bff/internal/model"

	"github.com/labstack/echo/v4"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
	AdminPath = "/admin"
)

type Requirement int

const (
	Public Requirement = iota
	// RequireAuth sends anonymous sessions to the login page.
	RequireAuth
	// RequireAdmin sends anonymous sessions to login and non-admins home.
	RequireAdmin
	// BlockAdminOnUserRoute sends admin sessions to the admin area.
	BlockAdminOnUserRoute
	// UserProtected is BlockAdminOnUserRoute wrapping RequireAuth; the admin
	// check runs first.
	UserProtected
	// GuestOnly is for the login and register pages: signed-in sessions go home.
	GuestOnly
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case RequireAuth:
		return "require_auth"
	case RequireAdmin:
		return "require_admin"
	case BlockAdminOnUserRoute:
		return "block_admin"
	case UserProtected:
		return "user_protected"
	case GuestOnly:
		return "guest_only"
	default:
		return "unknown"
	}
}

// Decision is either Allow or a redirect target.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

func CanAccess(session model.Session, requirement Requirement) Decision {
	switch requirement {
	case RequireAuth:
		if !session.IsAuthenticated() {
			return redirect(LoginPath)
		}
		return allow()

	case RequireAdmin:
		if !session.IsAuthenticated() {
			return redirect(LoginPath)
		}
		if !session.IsAdmin() {
			return redirect(HomePath)
		}
		return allow()

	case BlockAdminOnUserRoute:
		if session.IsAdmin() {
			return redirect(AdminPath)
		}
		return allow()

	case UserProtected:
		if d := CanAccess(session, BlockAdminOnUserRoute); !d.Allow {
			return d
		}
		return CanAccess(session, RequireAuth)

	case GuestOnly:
		if session.Token != "" {
			return redirect(HomePath)
		}
		return allow()

	default:
		return allow()
	}
}

// SessionLookup resolves the session of the current request.
type SessionLookup func(c echo.Context) model.Session

const sessionContextKey = "session"

// Middleware enforces requirement on every route of a group and stores the
// session on the echo context for handlers.
func Middleware(requirement Requirement, lookup SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := lookup(c)

			d := CanAccess(session, requirement)
			if !d.Allow {
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Middleware.
func SessionFrom(c echo.Context) model.Session {
	session, _ := c.Get(sessionContextKey).(model.Session)
	return session
}
