package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/daybook/internal/dayerror"
	"github.com/mdouchement/daybook/internal/model"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler is a middleware that formats rendered errors.
// Client errors keep their message, anything else is logged with its
// context and rendered as an opaque 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	switch err := err.(type) {
	case *echo.HTTPError:
		_ = c.JSON(err.Code, echo.Map{
			"error": fmt.Sprintf("%v", err.Message),
		})
	case *dayerror.DayError:
		status := dayerror.StatusCode(err)
		if status < 500 {
			_ = c.JSON(status, err)
			return
		}

		internal(err, c)
	default:
		internal(err, c)
	}
}

func internal(err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()

	log := logrus.WithFields(logrus.Fields{
		"id":        id,
		"operation": c.Request().Method + " " + c.Path(),
	})
	if user, ok := c.Get(CurrentUserContextKey).(*model.User); ok {
		log = log.WithField("user", user.ID)
	}
	if entry := c.Param("id"); entry != "" {
		log = log.WithField("entry", entry)
	}
	log.Error(err)

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": fmt.Sprintf("Unexpected error (id: %s)", id),
	})
}
