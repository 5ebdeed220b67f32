package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/daybook/internal/database"
	"github.com/mdouchement/daybook/internal/dayerror"
	"github.com/mdouchement/daybook/internal/model"
	"github.com/pkg/errors"
)

const (
	// Issuer is the JWT issuer claim of the tokens.
	Issuer = "daybook"
	// TypeAccessToken is the audience claim of access tokens.
	TypeAccessToken = "access_token"
	// TypeRefreshToken is the audience claim of refresh tokens.
	TypeRefreshToken = "refresh_token"
)

type (
	// A Manager manages sessions.
	// The bearer tokens it issues are opaque per-session tokens wrapped in a
	// signed JWT so a tampered token is rejected without any database access.
	Manager interface {
		// Generate creates a new session without user information.
		Generate() *model.Session
		// Token wraps the session's stored token of the given type in a signed JWT.
		Token(session *model.Session, t string) (string, error)
		// ParseToken checks the token signature and returns the session id
		// and the wrapped opaque token. Expired tokens parse fine, their
		// validation belongs to Validate.
		ParseToken(token string) (id, plain string, err error)
		// Validate validates a parsed access token and returns its session.
		Validate(id, plain string) (*model.Session, error)
		// UserFromSession returns the session's user.
		UserFromSession(session *model.Session) (*model.User, error)
		// AccessTokenExpireAt returns the expiration date of the access token.
		AccessTokenExpireAt(session *model.Session) time.Time
		// Regenerate regenerates the session's tokens.
		Regenerate(session *model.Session) error
	}

	manager struct {
		db                         database.Client
		signingKey                 []byte
		accessTokenExpirationTime  time.Duration
		refreshTokenExpirationTime time.Duration
	}
)

// NewManager returns a new manager.
func NewManager(db database.Client, signingKey []byte, accessTokenExpirationTime, refreshTokenExpirationTime time.Duration) Manager {
	return &manager{
		db:                         db,
		signingKey:                 signingKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
	}
}

func (m *manager) Generate() *model.Session {
	return &model.Session{
		ExpireAt:     time.Now().Add(m.refreshTokenExpirationTime).UTC(),
		AccessToken:  SecureToken(24),
		RefreshToken: SecureToken(24),
	}
}

func (m *manager) Token(session *model.Session, t string) (string, error) {
	plain := session.AccessToken
	expire := m.AccessTokenExpireAt(session)
	if t == TypeRefreshToken {
		plain = session.RefreshToken
		expire = session.ExpireAt
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{t},
		Subject:   session.ID,
		ID:        plain,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expire),
	})

	payload, err := token.SignedString(m.signingKey)
	return payload, errors.Wrap(err, "could not sign session token")
}

func (m *manager) ParseToken(token string) (string, string, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %s", t.Header["alg"])
		}
		return m.signingKey, nil
	}, jwt.WithIssuer(Issuer), jwt.WithoutClaimsValidation())
	if err != nil {
		return "", "", errors.Wrap(err, "could not parse session token")
	}

	return claims.Subject, claims.ID, nil
}

func (m *manager) Validate(id, plain string) (*model.Session, error) {
	session, err := m.db.FindSession(id)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, dayerror.NewWithCode(http.StatusUnauthorized, "Invalid login credentials.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if !SecureCompare(session.AccessToken, plain) {
		return nil, dayerror.NewWithCode(http.StatusUnauthorized, "Invalid login credentials.")
	}

	if m.isSessionExpired(session) {
		return nil, dayerror.NewWithCode(http.StatusUnauthorized, "Invalid login credentials.")
	}

	if m.isAccessTokenExpired(session) {
		return nil, dayerror.NewWithCode(http.StatusUnauthorized, "The provided access token has expired.")
	}

	return session, nil
}

func (m *manager) UserFromSession(session *model.Session) (*model.User, error) {
	user, err := m.db.FindUser(session.UserID)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, dayerror.NewWithCode(http.StatusUnauthorized, "Invalid login credentials.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}
	return user, nil
}

func (m *manager) AccessTokenExpireAt(session *model.Session) time.Time {
	return session.ExpireAt.Add(-m.refreshTokenExpirationTime).Add(m.accessTokenExpirationTime)
}

func (m *manager) Regenerate(session *model.Session) error {
	if m.isSessionExpired(session) {
		return dayerror.NewWithCode(http.StatusBadRequest, "The refresh token has expired.")
	}

	session.AccessToken = SecureToken(24)
	session.RefreshToken = SecureToken(24)
	session.ExpireAt = time.Now().Add(m.refreshTokenExpirationTime).UTC()

	return errors.Wrap(m.db.Save(session), "could not save session after refreshing tokens")
}

func (m *manager) isSessionExpired(session *model.Session) bool {
	return session.ExpireAt.Before(time.Now())
}

func (m *manager) isAccessTokenExpired(session *model.Session) bool {
	return m.AccessTokenExpireAt(session).Before(time.Now())
}
