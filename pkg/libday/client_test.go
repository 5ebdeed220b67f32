package libday_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestClientNoEndpoint(t *testing.T) {
	client := libday.NewDefaultClient("")

	_, err := client.Login("george.abitbol@nowhere.lan", "password42")
	assert.Equal(t, libday.ErrNoEndpoint, errors.Cause(err))
}

func TestClientNoSession(t *testing.T) {
	// Authenticated calls must fail closed before any network access.
	client := libday.NewDefaultClient("http://daybook.invalid")

	_, err := client.ListEntries()
	assert.Equal(t, libday.ErrNoSession, errors.Cause(err))

	_, err = client.Entry("42")
	assert.Equal(t, libday.ErrNoSession, errors.Cause(err))

	_, err = client.CreateEntry(libday.CreateEntry{Title: "Day 1", Content: "content"})
	assert.Equal(t, libday.ErrNoSession, errors.Cause(err))

	_, err = client.UpdateEntry("42", libday.EntryPatch{Title: libday.String("Renamed")})
	assert.Equal(t, libday.ErrNoSession, errors.Cause(err))

	err = client.DeleteEntry("42")
	assert.Equal(t, libday.ErrNoSession, errors.Cause(err))

	err = client.Logout()
	assert.Equal(t, libday.ErrNoSession, errors.Cause(err))
}

func TestClientLogin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/sign_in", r.URL.Path)

		var params map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "george.abitbol@nowhere.lan", params["email"])
		assert.Equal(t, "password42", params["password"])

		payload(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": "42", "email": params["email"]},
			"session": map[string]any{
				"access_token":       "access",
				"refresh_token":      "refresh",
				"access_expiration":  time.Now().Add(time.Hour),
				"refresh_expiration": time.Now().Add(24 * time.Hour),
			},
		})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	user, err := client.Login("george.abitbol@nowhere.lan", "password42")
	assert.NoError(t, err)
	assert.Equal(t, "42", user.ID)

	// The session's access token becomes the bearer token.
	assert.Equal(t, "access", client.BearerToken())
	assert.True(t, client.Session().Defined())
}

func TestClientLoginFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload(w, http.StatusUnauthorized, map[string]any{"error": "Invalid email or password."})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	_, err := client.Login("george.abitbol@nowhere.lan", "nope")
	assert.Error(t, err)

	apierr, ok := errors.Cause(err).(*libday.APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusCode)
	assert.Equal(t, "Invalid email or password.", apierr.Message)
}

func TestClientListEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/journal/entries", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		payload(w, http.StatusOK, []map[string]any{
			{"id": "2", "title": "Day 2", "content": "better", "type": "note"},
			{"id": "1", "title": "Day 1", "content": "meh", "type": "note", "mood": "anxious"},
		})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	client.SetBearerToken("access")

	entries, err := client.ListEntries()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Day 2", entries[0].Title)
	assert.Equal(t, "anxious", entries[1].Mood)
}

func TestClientUpdateEntrySparsePatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/journal/entries/42", r.URL.Path)

		// Absent fields must not appear in the payload at all.
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"title":"Renamed"}`, string(raw))

		payload(w, http.StatusOK, map[string]any{"id": "42", "title": "Renamed", "content": "untouched", "type": "note"})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	client.SetBearerToken("access")

	entry, err := client.UpdateEntry("42", libday.EntryPatch{Title: libday.String("Renamed")})
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", entry.Title)
	assert.Equal(t, "untouched", entry.Content)
}

func TestClientDeleteEntry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/journal/entries/42", r.URL.Path)

		// The delete body defaults to an empty JSON object.
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{}`, string(raw))

		payload(w, http.StatusOK, map[string]any{"success": true})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	client.SetBearerToken("access")

	assert.NoError(t, client.DeleteEntry("42"))
}

func TestClientDeleteEntryNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload(w, http.StatusNotFound, map[string]any{"error": "Entry not found."})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	client.SetBearerToken("access")

	err := client.DeleteEntry("42")
	apierr, ok := errors.Cause(err).(*libday.APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apierr.StatusCode)
	assert.Equal(t, "Entry not found.", apierr.Message)
}

func TestClientRefreshSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/refresh", r.URL.Path)

		payload(w, http.StatusOK, map[string]any{
			"session": map[string]any{
				"access_token":       "new-access",
				"refresh_token":      "new-refresh",
				"access_expiration":  time.Now().Add(time.Hour),
				"refresh_expiration": time.Now().Add(24 * time.Hour),
			},
		})
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	client.SetBearerToken("expired-access")

	session, err := client.RefreshSession("expired-access", "refresh")
	assert.NoError(t, err)
	assert.Equal(t, "new-access", session.AccessToken)
	assert.Equal(t, "new-refresh", session.RefreshToken)
}

func TestClientNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream proxy is on fire\n"))
	}))
	defer ts.Close()

	client := libday.NewDefaultClient(ts.URL)
	client.SetBearerToken("access")

	_, err := client.ListEntries()
	apierr, ok := errors.Cause(err).(*libday.APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apierr.StatusCode)
	assert.Equal(t, "upstream proxy is on fire", apierr.Message)
}

func payload(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}
