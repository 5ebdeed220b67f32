package libday

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a daybook server.
	Client interface {
		// Register creates an account on the daybook server and opens a session.
		Register(email, password string) (*User, error)
		// Login connects the Client to the daybook server.
		Login(email, password string) (*User, error)
		// Logout terminates the current session.
		Logout() error
		// RefreshSession gets a new pair of tokens by refreshing the session.
		RefreshSession(access, refresh string) (*Session, error)
		// BearerToken returns the access token used for authenticated requests.
		BearerToken() string
		// SetBearerToken sets the access token used for authenticated requests.
		SetBearerToken(token string)
		// Session returns the authentication session.
		Session() Session
		// SetSession sets the authentication session.
		// It also uses its access token as the bearer token.
		SetSession(session Session)
		// ListEntries returns all the entries owned by the authenticated user,
		// most recently created first.
		ListEntries() ([]*Entry, error)
		// Entry returns the entry for the given id.
		Entry(id string) (*Entry, error)
		// CreateEntry creates a new journal entry.
		CreateEntry(params CreateEntry) (*Entry, error)
		// UpdateEntry applies a sparse patch on the entry for the given id.
		UpdateEntry(id string, patch EntryPatch) (*Entry, error)
		// DeleteEntry permanently deletes the entry for the given id.
		DeleteEntry(id string) error
	}

	// A User is the public rendering of an account.
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		bearer   string
		session  Session
	}
)

var (
	// ErrNoEndpoint is returned when no base URL is configured.
	// It is a configuration error, retrying won't help.
	ErrNoEndpoint = errors.New("no endpoint configured")
	// ErrNoSession is returned by authenticated calls, before any network
	// access, when no credential could be resolved.
	ErrNoSession = errors.New("not logged in")
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) Client {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) Client {
	return &client{http: c, endpoint: endpoint}
}

func (c *client) Register(email, password string) (*User, error) {
	return c.signin("/api/auth/register", email, password)
}

func (c *client) Login(email, password string) (*User, error) {
	return c.signin("/api/auth/sign_in", email, password)
}

func (c *client) signin(route, email, password string) (*User, error) {
	var login struct {
		User    User    `json:"user"`
		Session Session `json:"session"`
	}

	err := c.call(http.MethodPost, route, p{"email": email, "password": password}, &login)
	if err != nil {
		return nil, err
	}

	c.SetSession(login.Session)
	return &login.User, nil
}

func (c *client) Logout() error {
	return c.authenticated(http.MethodPost, "/api/auth/sign_out", nil, nil)
}

func (c *client) RefreshSession(access, refresh string) (*Session, error) {
	var renew struct {
		Session Session `json:"session"`
	}

	err := c.authenticated(http.MethodPost, "/api/auth/refresh", p{
		"access_token":  access,
		"refresh_token": refresh,
	}, &renew)
	if err != nil {
		return nil, err
	}

	return &renew.Session, nil
}

func (c *client) BearerToken() string {
	return c.bearer
}

func (c *client) SetBearerToken(token string) {
	c.bearer = token
}

func (c *client) Session() Session {
	return c.session
}

func (c *client) SetSession(session Session) {
	c.session = session
	c.bearer = c.session.AccessToken
}

func (c *client) ListEntries() ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := c.get("/api/journal/entries", &entries)
	return entries, err
}

func (c *client) Entry(id string) (*Entry, error) {
	var entry Entry
	err := c.get("/api/journal/entries/"+id, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *client) CreateEntry(params CreateEntry) (*Entry, error) {
	var entry Entry
	err := c.post("/api/journal/entries", params, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *client) UpdateEntry(id string, patch EntryPatch) (*Entry, error) {
	var entry Entry
	err := c.put("/api/journal/entries/"+id, patch, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *client) DeleteEntry(id string) error {
	var status struct {
		Success bool `json:"success"`
	}

	err := c.del("/api/journal/entries/"+id, nil, &status)
	if err != nil {
		return err
	}
	if !status.Success {
		return errors.New("server did not acknowledge the deletion")
	}
	return nil
}

//
// Verb helpers. Entry routes are authenticated, auth routes are not.
//

func (c *client) get(route string, out any) error {
	return c.authenticated(http.MethodGet, route, nil, out)
}

func (c *client) post(route string, body, out any) error {
	return c.authenticated(http.MethodPost, route, body, out)
}

func (c *client) put(route string, body, out any) error {
	return c.authenticated(http.MethodPut, route, body, out)
}

//nolint:unused // kept so every verb has its wrapper
func (c *client) patch(route string, body, out any) error {
	return c.authenticated(http.MethodPatch, route, body, out)
}

func (c *client) del(route string, body, out any) error {
	if body == nil {
		// Some strict servers reject an empty body with a JSON content type.
		body = p{}
	}
	return c.authenticated(http.MethodDelete, route, body, out)
}

// authenticated behaves like call but fails closed before any network access
// when no credential is available.
func (c *client) authenticated(method, route string, body, out any) error {
	if c.bearer == "" {
		return ErrNoSession
	}
	return c.call(method, route, body, out)
}

// call performs an HTTP request against the configured endpoint and decodes
// the JSON response into out. Any non-2xx response is returned as an *APIError
// carrying the status code and the response body.
func (c *client) call(method, route string, body, out any) error {
	if c.endpoint == "" {
		return ErrNoEndpoint
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)

	//
	// Build request
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "could not serialize request body")
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, u.String(), payload)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Add("Authorization", "Bearer "+c.bearer)
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return parseAPIError(res.Body, res.StatusCode)
	}

	//
	// Process response
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(out), "could not parse response")
}
