package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mdouchement/daybook/internal/client"
	"github.com/muesli/coral"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &coral.Command{
		Use:     "dayc",
		Short:   "Daybook journal client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    coral.NoArgs,
	}
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(listCmd)
	c.AddCommand(showCmd)
	c.AddCommand(addCmd)
	c.AddCommand(rmCmd)
	c.AddCommand(toggleCmd)
	c.AddCommand(editCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	loginCmd = &coral.Command{
		Use:   "login",
		Short: "Login to the Daybook server",
		Args:  coral.NoArgs,
		RunE: func(cmd *coral.Command, args []string) error {
			register, _ := cmd.Flags().GetBool("register")
			return client.Login(register)
		},
	}

	logoutCmd = &coral.Command{
		Use:   "logout",
		Short: "Logout from a Daybook server session",
		Args:  coral.NoArgs,
		RunE: func(_ *coral.Command, args []string) error {
			return client.Logout()
		},
	}

	listCmd = &coral.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  coral.NoArgs,
		RunE: func(cmd *coral.Command, args []string) error {
			since, _ := cmd.Flags().GetString("since")
			return client.List(since)
		},
	}

	showCmd = &coral.Command{
		Use:   "show ID",
		Short: "Display a journal entry",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			return client.Show(args[0])
		},
	}

	addCmd = &coral.Command{
		Use:   "add TITLE CONTENT",
		Short: "Create a journal entry",
		Args:  coral.ExactArgs(2),
		RunE: func(cmd *coral.Command, args []string) error {
			mood, _ := cmd.Flags().GetString("mood")
			checklist, _ := cmd.Flags().GetBool("checklist")
			return client.Add(args[0], args[1], mood, checklist)
		},
	}

	rmCmd = &coral.Command{
		Use:   "rm ID",
		Short: "Delete a journal entry",
		Args:  coral.ExactArgs(1),
		RunE: func(_ *coral.Command, args []string) error {
			return client.Delete(args[0])
		},
	}

	toggleCmd = &coral.Command{
		Use:   "toggle ID INDEX",
		Short: "Toggle an item of a checklist entry",
		Args:  coral.ExactArgs(2),
		RunE: func(_ *coral.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("INDEX must be a number: %s", args[1])
			}
			return client.Toggle(args[0], index)
		},
	}

	editCmd = &coral.Command{
		Use:   "edit",
		Short: "Text-based journal editor",
		Args:  coral.NoArgs,
		RunE: func(_ *coral.Command, args []string) error {
			return client.Edit()
		},
	}
)

func init() {
	loginCmd.Flags().Bool("register", false, "Register a new account instead of signing in")
	listCmd.Flags().String("since", "", "Only list entries created after the given date")
	addCmd.Flags().String("mood", "", "Mood tag (happy, sad, neutral, excited, anxious)")
	addCmd.Flags().Bool("checklist", false, "Treat each content line as a checklist item")
}
