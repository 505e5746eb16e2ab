package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGate() Gate {
	return Gate{
		ProtectedPrefix: "/dashboard",
		LoginPath:       "/login",
		HomePath:        "/",
	}
}

func TestGate_ProtectedPath(t *testing.T) {
	g := testGate()

	// no session on a protected path bounces to login
	v := g.Evaluate(false, "/dashboard")
	assert.Equal(t, DenyRedirect, v.Decision)
	assert.Equal(t, "/login", v.Location)

	v = g.Evaluate(false, "/dashboard/invoices/abc/edit")
	assert.Equal(t, DenyRedirect, v.Decision)

	// with a session the request is admitted
	v = g.Evaluate(true, "/dashboard")
	assert.Equal(t, Allow, v.Decision)
	assert.Empty(t, v.Location)
}

func TestGate_LoginPage(t *testing.T) {
	g := testGate()

	// a logged-in user has no business on the login page
	v := g.Evaluate(true, "/login")
	assert.Equal(t, RedirectAway, v.Decision)
	assert.Equal(t, "/", v.Location)

	// anonymous users may load it
	v = g.Evaluate(false, "/login")
	assert.Equal(t, Allow, v.Decision)
}

func TestGate_NeitherProtectedNorPublic(t *testing.T) {
	g := testGate()

	for _, sess := range []bool{true, false} {
		v := g.Evaluate(sess, "/healthz")
		assert.Equal(t, Allow, v.Decision, "session=%v", sess)
	}
}

func TestGate_ProtectedPrefixDoesNotLeak(t *testing.T) {
	g := testGate()

	// "/dashboardfoo" shares the prefix bytes but not the path segment
	v := g.Evaluate(false, "/dashboardfoo")
	assert.Equal(t, Allow, v.Decision)
}

func TestGate_LoginPrefixDoesNotLeak(t *testing.T) {
	g := testGate()

	// "/loginfoo" is not the login page
	v := g.Evaluate(true, "/loginfoo")
	assert.Equal(t, Allow, v.Decision)
}
