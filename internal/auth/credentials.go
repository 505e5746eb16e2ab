package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/model"
	"github.com/finvoice/dashboard/internal/repository"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so the
// login response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CheckCredentials looks the user up by email and compares the bcrypt hash.
// Store failures propagate as DataAccessError; absence maps to
// ErrInvalidCredentials.
func CheckCredentials(ctx context.Context, users repository.UsersRepository, email, password string) (*model.User, error) {
	u, err := users.GetByEmail(ctx, email)
	if errs.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
