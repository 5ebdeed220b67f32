package database

import (
	"github.com/mdouchement/daybook/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		UserInteraction
		SessionInteraction
		EntryInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
	}

	// An SessionInteraction defines all the methods used to interact with a session record.
	SessionInteraction interface {
		// FindSession returns the session for the given id (UUID).
		FindSession(id string) (*model.Session, error)
		// FindSessionByUserID returns the session for the given id and user id.
		FindSessionByUserID(id, userID string) (*model.Session, error)
		// FindActiveSessionsByUserID returns all active sessions for the given user id.
		FindActiveSessionsByUserID(userID string) ([]*model.Session, error)
		// FindSessionsByUserID returns all sessions for the given user id.
		FindSessionsByUserID(userID string) ([]*model.Session, error)
		// FindSessionByTokens returns the session for the given id, access and refresh token.
		FindSessionByTokens(id, access, refresh string) (*model.Session, error)
	}

	// An EntryInteraction defines all the methods used to interact with an entry record.
	EntryInteraction interface {
		// FindEntry returns the entry for the given id (UUID).
		FindEntry(id string) (*model.Entry, error)
		// FindEntryByUserID returns the entry for the given id and user id (UUID).
		// An entry owned by another user is a not found error.
		FindEntryByUserID(id, userID string) (*model.Entry, error)
		// FindEntriesByUserID returns all the entries owned by the given user,
		// most recently created first.
		FindEntriesByUserID(userID string) ([]*model.Entry, error)
		// DeleteEntry deletes the entry matching the given id and user id.
		DeleteEntry(id, userID string) error
	}
)
