package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/model"
)

type fakeUsers struct {
	user *model.User
	err  error
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || f.user.Email != email {
		return nil, errs.ErrNotFound
	}
	return f.user, nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestCheckCredentials_Valid(t *testing.T) {
	users := &fakeUsers{user: &model.User{
		ID:       "usr_1",
		Email:    "user@nextmail.com",
		Password: hashOf(t, "123456"),
	}}

	u, err := CheckCredentials(context.Background(), users, "user@nextmail.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "usr_1", u.ID)
}

func TestCheckCredentials_WrongPassword(t *testing.T) {
	users := &fakeUsers{user: &model.User{
		Email:    "user@nextmail.com",
		Password: hashOf(t, "123456"),
	}}

	_, err := CheckCredentials(context.Background(), users, "user@nextmail.com", "654321")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckCredentials_UnknownEmail(t *testing.T) {
	users := &fakeUsers{}

	// unknown email reads the same as a wrong password
	_, err := CheckCredentials(context.Background(), users, "nobody@nextmail.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckCredentials_StoreFailurePropagates(t *testing.T) {
	boom := errs.DataAccess("users.GetByEmail", errors.New("connection refused"))
	users := &fakeUsers{err: boom}

	_, err := CheckCredentials(context.Background(), users, "user@nextmail.com", "123456")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	_, ok := errs.AsDataAccess(err)
	assert.True(t, ok)
}
