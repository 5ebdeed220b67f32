package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/daybook/internal/database"
	"github.com/mdouchement/daybook/internal/dayerror"
	"github.com/mdouchement/daybook/internal/model"
	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/pkg/errors"
)

type (
	// entry contains all journal entry handlers.
	entry struct {
		db database.Client
	}

	createEntryParams struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Mood    string `json:"mood"`
		Type    string `json:"type"`
	}

	// updateEntryParams is a sparse patch.
	// A nil field was absent from the request body and must stay untouched.
	updateEntryParams struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Mood    *string `json:"mood"`
		Type    *string `json:"type"`
	}
)

///// List
////
//

// List returns all the entries owned by the current user,
// most recently created first.
func (h *entry) List(c echo.Context) error {
	entries, err := h.db.FindEntriesByUserID(currentUser(c).ID)
	if err != nil {
		return errors.Wrap(err, "could not list entries")
	}

	return c.JSON(http.StatusOK, entries)
}

///// Show
////
//

// Show returns the entry for the given id.
// An entry owned by another user renders the same 404 as a missing one.
func (h *entry) Show(c echo.Context) error {
	entry, err := h.findOwned(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}

///// Create
////
//

// Create inserts a new entry owned by the current user.
// The owner comes from the session, any owner-like field sent by the client is ignored.
func (h *entry) Create(c echo.Context) error {
	// Filter params
	var params createEntryParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, dayerror.New("Could not get entry params."))
	}

	params.Title = strings.TrimSpace(params.Title)
	params.Content = strings.TrimSpace(params.Content)

	if params.Title == "" {
		return c.JSON(http.StatusBadRequest, dayerror.New("Title can't be blank."))
	}
	if params.Content == "" {
		return c.JSON(http.StatusBadRequest, dayerror.New("Content can't be blank."))
	}
	if params.Type == "" {
		params.Type = libday.TypeNote
	}
	if !libday.ValidType(params.Type) {
		return c.JSON(http.StatusBadRequest, dayerror.New("Invalid entry type."))
	}
	if params.Mood != "" && !libday.ValidMood(params.Mood) {
		return c.JSON(http.StatusBadRequest, dayerror.New("Invalid mood."))
	}
	if params.Type == libday.TypeChecklist && !libday.ValidChecklist(params.Content) {
		return c.JSON(http.StatusBadRequest, dayerror.New("Checklist content must be a sequence of items."))
	}

	entry := &model.Entry{
		UserID:  currentUser(c).ID,
		Title:   params.Title,
		Content: params.Content,
		Mood:    params.Mood,
		Type:    params.Type,
	}

	if err := h.db.Save(entry); err != nil {
		return errors.Wrap(err, "could not persist entry")
	}

	return c.JSON(http.StatusCreated, entry)
}

///// Update
////
//

// Update applies a sparse patch on the entry for the given id.
// Only the fields present in the body change, updated_at refreshes even
// for a no-op patch.
func (h *entry) Update(c echo.Context) error {
	entry, err := h.findOwned(c)
	if err != nil {
		return err
	}

	// Filter params
	var params updateEntryParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, dayerror.New("Could not get entry params."))
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return c.JSON(http.StatusBadRequest, dayerror.New("Title can't be blank."))
		}
		entry.Title = title
	}

	if params.Content != nil {
		content := strings.TrimSpace(*params.Content)
		if content == "" {
			return c.JSON(http.StatusBadRequest, dayerror.New("Content can't be blank."))
		}
		entry.Content = content
	}

	if params.Mood != nil {
		// An empty mood clears the tag.
		if *params.Mood != "" && !libday.ValidMood(*params.Mood) {
			return c.JSON(http.StatusBadRequest, dayerror.New("Invalid mood."))
		}
		entry.Mood = *params.Mood
	}

	if params.Type != nil {
		if !libday.ValidType(*params.Type) {
			return c.JSON(http.StatusBadRequest, dayerror.New("Invalid entry type."))
		}
		entry.Type = *params.Type
	}

	// Revalidate the content when the patched entry ends up as a checklist.
	if entry.Type == libday.TypeChecklist && (params.Content != nil || params.Type != nil) {
		if !libday.ValidChecklist(entry.Content) {
			return c.JSON(http.StatusBadRequest, dayerror.New("Checklist content must be a sequence of items."))
		}
	}

	if err := h.db.Save(entry); err != nil {
		return errors.Wrap(err, "could not persist entry")
	}

	return c.JSON(http.StatusOK, entry)
}

///// Delete
////
//

// Delete permanently deletes the entry for the given id. No soft-delete.
func (h *entry) Delete(c echo.Context) error {
	entry, err := h.findOwned(c)
	if err != nil {
		return err
	}

	if err := h.db.DeleteEntry(entry.ID, entry.UserID); err != nil {
		return errors.Wrap(err, "could not delete entry")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}

// findOwned fetches the requested entry filtered on the current user.
// Absent rows and rows owned by someone else are indistinguishable.
func (h *entry) findOwned(c echo.Context) (*model.Entry, error) {
	entry, err := h.db.FindEntryByUserID(c.Param("id"), currentUser(c).ID)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, dayerror.NewWithCode(http.StatusNotFound, "Entry not found.")
		}
		return nil, errors.Wrap(err, "could not get entry")
	}
	return entry, nil
}
