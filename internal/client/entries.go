package client

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/pkg/errors"
)

// List prints the entries of the authenticated user, most recent first.
// since filters out entries created before the given date, it accepts any
// common date format.
func List(since string) error {
	client, _, err := connect()
	if err != nil {
		return err
	}

	entries, err := client.ListEntries()
	if err != nil {
		return errors.Wrap(err, "could not list entries")
	}

	if since != "" {
		oldest, err := dateparse.ParseAny(since)
		if err != nil {
			return errors.Wrap(err, "could not parse the since date")
		}

		filtered := entries[:0]
		for _, entry := range entries {
			if entry.CreatedAt.Before(oldest) {
				continue
			}
			filtered = append(filtered, entry)
		}
		entries = filtered
	}

	for _, entry := range entries {
		fmt.Printf("%s  %-9s %-9s %s  (%s)\n",
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
			entry.Type,
			entry.Mood,
			entry.Title,
			entry.ID,
		)
	}
	return nil
}

// Show prints a single entry.
func Show(id string) error {
	client, _, err := connect()
	if err != nil {
		return err
	}

	entry, err := client.Entry(id)
	if err != nil {
		return errors.Wrap(err, "could not get entry")
	}

	fmt.Printf("# %s\n", entry.Title)
	if entry.Mood != "" {
		fmt.Printf("mood: %s\n", entry.Mood)
	}
	fmt.Println()

	if entry.Type != libday.TypeChecklist {
		fmt.Println(entry.Content)
		return nil
	}

	checklist, err := libday.ParseChecklist(entry.Content)
	if err != nil {
		return errors.Wrap(err, "could not parse checklist")
	}
	for i, item := range checklist.Items {
		check := " "
		if item.Completed {
			check = "x"
		}
		fmt.Printf("%3d. [%s] %s\n", i, check, item.Text)
	}
	return nil
}

// Add creates a new entry. For a checklist, each content line becomes an item.
func Add(title, content, mood string, checklist bool) error {
	client, _, err := connect()
	if err != nil {
		return err
	}

	params := libday.CreateEntry{
		Title:   title,
		Content: content,
		Mood:    mood,
	}

	if checklist {
		list := &libday.Checklist{}
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			list.Items = append(list.Items, libday.ChecklistItem{Text: line})
		}

		params.Type = libday.TypeChecklist
		params.Content, err = list.Encode()
		if err != nil {
			return err
		}
	}

	entry, err := client.CreateEntry(params)
	if err != nil {
		return errors.Wrap(err, "could not create entry")
	}

	fmt.Println("Created entry", entry.ID)
	return nil
}

// Delete permanently deletes an entry.
func Delete(id string) error {
	client, _, err := connect()
	if err != nil {
		return err
	}

	if err := client.DeleteEntry(id); err != nil {
		return errors.Wrap(err, "could not delete entry")
	}

	fmt.Println("Deleted entry", id)
	return nil
}

// Toggle flips the completed state of one checklist item.
func Toggle(id string, index int) error {
	client, _, err := connect()
	if err != nil {
		return err
	}

	entry, err := client.Entry(id)
	if err != nil {
		return errors.Wrap(err, "could not get entry")
	}
	if entry.Type != libday.TypeChecklist {
		return errors.New("not a checklist entry")
	}

	checklist, err := libday.ParseChecklist(entry.Content)
	if err != nil {
		return errors.Wrap(err, "could not parse checklist")
	}
	if err = checklist.Toggle(index); err != nil {
		return err
	}

	content, err := checklist.Encode()
	if err != nil {
		return err
	}

	_, err = client.UpdateEntry(entry.ID, libday.EntryPatch{Content: libday.String(content)})
	return errors.Wrap(err, "could not update entry")
}

// connect loads the credentials and returns a ready to use client.
// It fails before any network call when no token can be resolved.
func connect() (libday.Client, *Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not load config")
	}

	if cfg.ResolveToken() == "" {
		return nil, nil, errors.New("not logged in, run: dayc login")
	}

	client := libday.NewDefaultClient(cfg.Endpoint)
	if cfg.Session.Defined() {
		client.SetSession(cfg.Session)

		if err := Refresh(client, &cfg); err != nil {
			return nil, nil, err
		}
	} else {
		client.SetBearerToken(cfg.ResolveToken())
	}

	return client, &cfg, nil
}
