package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvoice/dashboard/internal/auth"
)

type stubSessions struct {
	valid map[string]string // session id -> user id
}

func (s *stubSessions) UserID(_ context.Context, id string) (string, error) {
	return s.valid[id], nil
}

func doGateRequest(t *testing.T, path, cookie string, sessions *stubSessions) *httptest.ResponseRecorder {
	t.Helper()

	gate := auth.Gate{ProtectedPrefix: "/v1", LoginPath: "/login", HomePath: "/v1/dashboard"}
	mw := SessionGate(sessions, gate, "dash_session")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "dash_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		uid, _ := UserIDFromCtx(c)
		return c.String(http.StatusOK, "handler:"+uid)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestSessionGate_NoSessionOnProtectedPath(t *testing.T) {
	rec := doGateRequest(t, "/v1/dashboard", "", &stubSessions{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"location":"/login"`)
}

func TestSessionGate_ExpiredSessionReadsAsAbsent(t *testing.T) {
	rec := doGateRequest(t, "/v1/invoices", "stale-session", &stubSessions{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGate_ValidSessionAdmitsAndSetsUser(t *testing.T) {
	sessions := &stubSessions{valid: map[string]string{"sess1": "usr_admin"}}
	rec := doGateRequest(t, "/v1/dashboard", "sess1", sessions)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "handler:usr_admin", rec.Body.String())
}

func TestSessionGate_LoggedInUserRedirectedOffLogin(t *testing.T) {
	sessions := &stubSessions{valid: map[string]string{"sess1": "usr_admin"}}
	rec := doGateRequest(t, "/login", "sess1", sessions)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/v1/dashboard", rec.Header().Get("Location"))
}

func TestSessionGate_PublicPathPassesThrough(t *testing.T) {
	rec := doGateRequest(t, "/healthz", "", &stubSessions{})

	assert.Equal(t, http.StatusOK, rec.Code)
}
