package client

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/mdouchement/daybook/internal/client/tui"
	"github.com/mdouchement/daybook/pkg/libday"
	"github.com/pkg/errors"
)

// Edit runs the text-based journal application.
func Edit() error {
	defer func() {
		if r := recover(); r != nil {
			var err error
			switch r := r.(type) {
			case error:
				err = r
			default:
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, true)

			tui.NewLogger().Printf("[PANIC RECOVER] %s %s\n", err, stack[:length])
		}
	}()

	client, _, err := connect()
	if err != nil {
		return err
	}

	//
	//
	ui, err := tui.New()
	if err != nil {
		return err
	}
	defer ui.Cleanup()

	entries, err := client.ListEntries()
	if err != nil {
		return errors.Wrap(err, "could not get entries")
	}

	synchronizer := initSynchronizer(client, ui)

	for _, entry := range entries {
		ui.Register(tui.NewEntry(entry, synchronizer))
	}
	ui.SortEntries()

	ui.Run()
	return nil
}

func initSynchronizer(client libday.Client, ui *tui.TUI) func(entry *libday.Entry) time.Time {
	var mu sync.Mutex

	return func(entry *libday.Entry) time.Time {
		mu.Lock()
		defer mu.Unlock()

		updated, err := client.UpdateEntry(entry.ID, libday.EntryPatch{
			Content: libday.String(entry.Content),
		})
		if err != nil {
			ui.DisplayStatus(errors.Wrap(err, "could not save entry").Error())
			return entry.UpdatedAt
		}

		ui.DisplayStatus("saved")
		ui.SortEntries() // Based on local updates. No refetch is done while the screen is alive.

		return updated.UpdatedAt
	}
}
