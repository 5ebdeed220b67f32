package client

import (
	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/pkg/errors"
)

// Logout terminates the current session on the daybook server.
func Logout() error {
	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "could not load config")
	}

	//
	//

	client := libday.NewDefaultClient(cfg.Endpoint)

	if !cfg.Session.Defined() {
		return errors.New("could not logout because session is not defined")
	}
	client.SetSession(cfg.Session)

	//
	//

	if err = client.Logout(); err != nil {
		return errors.Wrap(err, "could not logout")
	}

	return errors.Wrap(Remove(), "could not remove credential file")
}
