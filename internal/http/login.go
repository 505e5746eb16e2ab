package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/finvoice/dashboard/internal/auth"
	"github.com/finvoice/dashboard/internal/repository"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginHandler(users repository.UsersRepository, sessions *auth.Sessions, cookieName string, ttl time.Duration, homePath string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		u, err := auth.CheckCredentials(c.Request().Context(), users, req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		if err != nil {
			log.Errorf("login failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth error"})
		}

		sessID, err := sessions.Create(c.Request().Context(), u.ID)
		if err != nil {
			log.Errorf("session create failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "auth error"})
		}

		c.SetCookie(&http.Cookie{
			Name:     cookieName,
			Value:    sessID,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return c.JSON(http.StatusOK, map[string]any{
			"loggedIn": true,
			"location": homePath,
		})
	}
}

func logoutHandler(sessions *auth.Sessions, cookieName, loginPath string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
			if err := sessions.Destroy(c.Request().Context(), ck.Value); err != nil {
				log.Errorf("session destroy failed: %v", err)
			}
		}

		c.SetCookie(&http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return c.JSON(http.StatusOK, map[string]any{
			"loggedOut": true,
			"location":  loginPath,
		})
	}
}
