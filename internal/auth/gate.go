package auth

import "strings"

// Decision is the outcome of the authorization gate for one request.
type Decision int

const (
	// Allow admits the request to its handler.
	Allow Decision = iota
	// DenyRedirect refuses an unauthenticated request to a protected path
	// and points the caller at the login page.
	DenyRedirect
	// RedirectAway bounces an already-authenticated user off a public page
	// (the login form) toward home.
	RedirectAway
)

// Verdict pairs a decision with the navigation target for the two redirect
// outcomes. Location is empty for Allow.
type Verdict struct {
	Decision Decision
	Location string
}

// Gate is the pure authorization decision table. It runs before any protected
// handler executes; it gates entry, it does not wrap output.
type Gate struct {
	ProtectedPrefix string
	LoginPath       string
	HomePath        string
}

// Evaluate decides admission for one request.
//
//	session + protected  -> Allow
//	no session + protected -> DenyRedirect(login)
//	session + login page -> RedirectAway(home)
//	no session + login page -> Allow
//	anything else -> Allow
func (g Gate) Evaluate(sessionPresent bool, path string) Verdict {
	switch {
	case g.isProtected(path):
		if sessionPresent {
			return Verdict{Decision: Allow}
		}
		return Verdict{Decision: DenyRedirect, Location: g.LoginPath}
	case g.isLogin(path):
		if sessionPresent {
			return Verdict{Decision: RedirectAway, Location: g.HomePath}
		}
		return Verdict{Decision: Allow}
	default:
		return Verdict{Decision: Allow}
	}
}

func (g Gate) isProtected(path string) bool {
	return path == g.ProtectedPrefix || strings.HasPrefix(path, g.ProtectedPrefix+"/")
}

func (g Gate) isLogin(path string) bool {
	return path == g.LoginPath || strings.HasPrefix(path, g.LoginPath+"/")
}
