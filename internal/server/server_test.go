package server_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/daybook/internal/database"
	"github.com/mdouchement/daybook/internal/model"
	"github.com/mdouchement/daybook/internal/server"
	sessionpkg "github.com/mdouchement/daybook/internal/server/session"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/stretchr/testify/assert"
)

func TestRequestHome(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func setup() (engine *echo.Echo, ctrl server.Controller, r *gofight.RequestConfig, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "daybook.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	ctrl = server.Controller{
		Version:                    "test",
		Database:                   db,
		NoRegistration:             false,
		SigningKey:                 []byte("secret"),
		AccessTokenExpirationTime:  60 * 24 * time.Hour,
		RefreshTokenExpirationTime: 365 * 24 * time.Hour,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New(), func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func createUser(ctrl server.Controller, email string) *model.User {
	var err error

	user := &model.User{}
	user.Email = email
	user.Password, err = argon2.GenerateFromPasswordString("password42", argon2.Default)
	user.PasswordUpdatedAt = time.Now().Add(-12 * time.Hour).Unix()
	if err != nil {
		panic(err)
	}
	err = ctrl.Database.Save(user)
	if err != nil {
		panic(err)
	}

	return user
}

func createUserWithSession(ctrl server.Controller, email string) (*model.User, *model.Session) {
	user := createUser(ctrl, email)

	session := &model.Session{
		UserAgent:    "Go-http-client/1.1",
		UserID:       user.ID,
		ExpireAt:     time.Now().Add(ctrl.RefreshTokenExpirationTime).UTC(),
		AccessToken:  sessionpkg.SecureToken(8),
		RefreshToken: sessionpkg.SecureToken(8),
	}
	err := ctrl.Database.Save(session)
	if err != nil {
		panic(err)
	}

	return user, session
}

func accessToken(ctrl server.Controller, s *model.Session) string {
	sessions := sessionpkg.NewManager(
		ctrl.Database,
		ctrl.SigningKey,
		ctrl.AccessTokenExpirationTime,
		ctrl.RefreshTokenExpirationTime,
	)

	token, err := sessions.Token(s, sessionpkg.TypeAccessToken)
	if err != nil {
		panic(err)
	}
	return token
}

func refreshToken(ctrl server.Controller, s *model.Session) string {
	sessions := sessionpkg.NewManager(ctrl.Database, ctrl.SigningKey, ctrl.AccessTokenExpirationTime, ctrl.RefreshTokenExpirationTime)
	token, err := sessions.Token(s, sessionpkg.TypeRefreshToken)
	if err != nil {
		panic(err)
	}
	return token
}

func bearer(token string) gofight.H {
	return gofight.H{
		"Authorization": "Bearer " + token,
	}
}
