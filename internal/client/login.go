package client

import (
	"fmt"

	"github.com/chzyer/readline"
	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/pkg/errors"
)

// Login connects to a daybook server and stores the returned credentials.
// When register is true, an account is created first.
func Login(register bool) error {
	cfg := Config{}

	endpoint, err := readline.Line("Endpoint: ")
	if err != nil {
		return errors.Wrap(err, "could not read endpoint from stdin")
	}
	cfg.Endpoint = endpoint

	client := libday.NewDefaultClient(cfg.Endpoint)

	cfg.Email, err = readline.Line("Email: ")
	if err != nil {
		return errors.Wrap(err, "could not read email from stdin")
	}

	password, err := readline.Password("Password: ")
	if err != nil {
		return errors.Wrap(err, "could not read password from stdin")
	}

	signin := client.Login
	if register {
		signin = client.Register
	}

	user, err := signin(cfg.Email, string(password))
	if err != nil {
		return errors.Wrap(err, "could not login")
	}
	cfg.BearerToken = client.BearerToken()
	cfg.Session = client.Session()

	fmt.Printf("Connected as %s\n", user.Email)
	return Save(cfg)
}
