package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/daybook/internal/database"
	"github.com/mdouchement/daybook/internal/dayerror"
	"github.com/mdouchement/daybook/internal/model"
	"github.com/mdouchement/daybook/internal/server/serializer"
	sessionpkg "github.com/mdouchement/daybook/internal/server/session"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

type (
	// auth contains all authentication handlers.
	auth struct {
		db       database.Client
		sessions sessionpkg.Manager
	}

	credentialsParams struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	updatePasswordParams struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
)

///// Register
////
//

// Register handler is used to create an account.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params credentialsParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, dayerror.New("Could not get register params."))
	}

	if params.Email == "" {
		return c.JSON(http.StatusBadRequest, dayerror.New("No email provided."))
	}
	if params.Password == "" {
		return c.JSON(http.StatusBadRequest, dayerror.New("No password provided."))
	}

	// Check if the email is free to use.
	u, err := h.db.FindUserByMail(params.Email)
	if err != nil && !h.db.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return c.JSON(http.StatusBadRequest, dayerror.New("This email is already registered."))
	}

	user := &model.User{
		Email: params.Email,
	}
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := h.db.Save(user); err != nil {
		return errors.Wrap(err, "could not persist user")
	}

	return h.grant(c, user)
}

///// Login
////
//

// Login handler authenticates a user and opens a new session.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params credentialsParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, dayerror.New("Could not get credentials."))
	}

	if params.Email == "" || params.Password == "" {
		return c.JSON(http.StatusBadRequest, dayerror.New("No email or password provided."))
	}

	user, err := h.db.FindUserByMail(params.Email)
	if err != nil {
		if h.db.IsNotFound(err) {
			return c.JSON(http.StatusUnauthorized, dayerror.New("Invalid email or password."))
		}
		return errors.Wrap(err, "could not get access to database")
	}

	err = argon2.CompareHashAndPasswordString(user.Password, params.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, dayerror.New("Invalid email or password."))
	}

	return h.grant(c, user)
}

///// Logout
////
//

// Logout terminates the current session.
func (h *auth) Logout(c echo.Context) error {
	if err := h.db.Delete(currentSession(c)); err != nil {
		return errors.Wrap(err, "could not terminate session")
	}
	return c.NoContent(http.StatusNoContent)
}

///// UpdatePassword
////
//

// UpdatePassword changes the user's password.
// All the sessions opened before the change are revoked, a fresh one is returned.
func (h *auth) UpdatePassword(c echo.Context) error {
	// Filter params
	var params updatePasswordParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, dayerror.New("Could not get password params."))
	}

	if params.CurrentPassword == "" || params.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, dayerror.New("Please provide current and new passwords."))
	}

	user := currentUser(c)
	err := argon2.CompareHashAndPasswordString(user.Password, params.CurrentPassword)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, dayerror.New("Invalid password."))
	}

	user.Password, err = argon2.GenerateFromPasswordString(params.NewPassword, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := h.db.Save(user); err != nil {
		return errors.Wrap(err, "could not persist user")
	}

	return h.grant(c, user)
}

// grant opens a new session for the user and renders it with its tokens.
func (h *auth) grant(c echo.Context, user *model.User) error {
	session := h.sessions.Generate()
	session.UserID = user.ID
	session.UserAgent = c.Request().UserAgent()

	if err := h.db.Save(session); err != nil {
		return errors.Wrap(err, "could not persist session")
	}

	access, err := h.sessions.Token(session, sessionpkg.TypeAccessToken)
	if err != nil {
		return errors.Wrap(err, "could not generate access token")
	}
	refresh, err := h.sessions.Token(session, sessionpkg.TypeRefreshToken)
	if err != nil {
		return errors.Wrap(err, "could not generate refresh token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": serializer.User(user),
		"session": echo.Map{
			"access_token":       access,
			"refresh_token":      refresh,
			"access_expiration":  h.sessions.AccessTokenExpireAt(session).UTC(),
			"refresh_expiration": session.ExpireAt.UTC(),
		},
	})
}
