package middleware

import (
	"context"
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/finvoice/dashboard/internal/auth"
)

const ctxUserID = "user_id"

// UserIDFromCtx extracts the authenticated user id set by SessionGate.
func UserIDFromCtx(c echo.Context) (string, bool) {
	v := c.Get(ctxUserID)
	id, ok := v.(string)
	return id, ok && id != ""
}

// SessionChecker resolves a session cookie value to a user id ("" if the
// session is absent or expired).
type SessionChecker interface {
	UserID(ctx context.Context, sessionID string) (string, error)
}

// SessionGate resolves the session cookie and applies the authorization gate
// before any handler runs. Protected paths without a session get a 401 that
// points at the login page; a logged-in user hitting the login page is
// redirected home.
func SessionGate(sessions SessionChecker, gate auth.Gate, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var userID string
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				uid, err := sessions.UserID(c.Request().Context(), ck.Value)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth error"})
				}
				userID = uid
			}

			verdict := gate.Evaluate(userID != "", c.Request().URL.Path)
			switch verdict.Decision {
			case auth.DenyRedirect:
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    "unauthorized",
					"location": verdict.Location,
				})
			case auth.RedirectAway:
				return c.Redirect(http.StatusSeeOther, verdict.Location)
			}

			if userID != "" {
				c.Set(ctxUserID, userID)
			}
			return next(c)
		}
	}
}
