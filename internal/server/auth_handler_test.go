package server_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/mdouchement/daybook/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestRegistration(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	params := gofight.D{"trap": "registration can't be empty"}
	r.POST("/api/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":"No email provided."}`, r.Body.String())
	})

	params = gofight.D{"email": "george.abitbol@nowhere.lan"}
	r.POST("/api/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":"No password provided."}`, r.Body.String())
	})

	params["password"] = "password42"
	r.POST("/api/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.Regexp(t, `^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-4[a-fA-F0-9]{3}-[8|9|aA|bB][a-fA-F0-9]{3}-[a-fA-F0-9]{12}$`, string(v.Get("user", "id").GetStringBytes()))
		assert.Equal(t, params["email"], string(v.Get("user", "email").GetStringBytes()))
		assert.Nil(t, v.Get("user", "password"))

		assert.NotEmpty(t, v.Get("session", "access_token").GetStringBytes())
		assert.NotEmpty(t, v.Get("session", "refresh_token").GetStringBytes())

		timestamp, err := time.Parse(time.RFC3339Nano, string(v.Get("session", "refresh_expiration").GetStringBytes()))
		assert.NoError(t, err)
		assert.True(t, timestamp.After(time.Now()))
	})

	// The email is now taken.
	r.POST("/api/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":"This email is already registered."}`, r.Body.String())
	})
}

func TestRequestRegistrationDisabled(t *testing.T) {
	_, ctrl, r, cleanup := setup()
	defer cleanup()

	ctrl.NoRegistration = true
	engine := server.EchoEngine(ctrl)

	params := gofight.D{"email": "george.abitbol@nowhere.lan", "password": "password42"}
	r.POST("/api/auth/register").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

func TestRequestSignIn(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl, "george.abitbol@nowhere.lan")

	params := gofight.D{"email": user.Email}
	r.POST("/api/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":"No email or password provided."}`, r.Body.String())
	})

	params["password"] = "nope"
	r.POST("/api/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password."}`, r.Body.String())
	})

	// Unknown accounts render the same error as a bad password.
	r.POST("/api/auth/sign_in").SetJSON(gofight.D{"email": "nobody@nowhere.lan", "password": "password42"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":"Invalid email or password."}`, r.Body.String())
	})

	params["password"] = "password42"
	r.POST("/api/auth/sign_in").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, user.ID, string(v.Get("user", "id").GetStringBytes()))
		assert.NotEmpty(t, v.Get("session", "access_token").GetStringBytes())
	})
}

func TestRequestSignOut(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	_, session := createUserWithSession(ctrl, "george.abitbol@nowhere.lan")
	token := accessToken(ctrl, session)

	r.POST("/api/auth/sign_out").SetHeader(bearer(token)).SetJSON(gofight.D{}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	// The session is gone, its token no longer grants access.
	r.GET("/api/journal/entries").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":"Invalid login credentials."}`, r.Body.String())
	})
}

func TestRequestUpdatePassword(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	_, session := createUserWithSession(ctrl, "george.abitbol@nowhere.lan")
	token := accessToken(ctrl, session)

	// Sessions created before the password change get revoked, so move this
	// one in the past to observe the revocation.
	past := time.Now().Add(-2 * time.Hour).UTC()
	session.CreatedAt = &past
	if err := ctrl.Database.Save(session); err != nil {
		panic(err)
	}

	params := gofight.D{"current_password": "nope", "new_password": "password1337"}
	r.POST("/api/auth/change_pw").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":"Invalid password."}`, r.Body.String())
	})

	params["current_password"] = "password42"
	var freshToken string
	r.POST("/api/auth/change_pw").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		freshToken = string(v.Get("session", "access_token").GetStringBytes())
		assert.NotEmpty(t, freshToken)
	})

	r.GET("/api/journal/entries").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":"Revoked token."}`, r.Body.String())
	})

	r.GET("/api/journal/entries").SetHeader(bearer(freshToken)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})

	r.POST("/api/auth/sign_in").SetJSON(gofight.D{"email": "george.abitbol@nowhere.lan", "password": "password1337"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})
}
