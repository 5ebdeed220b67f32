package tui

import (
	"fmt"
	"sort"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/list"
	"github.com/gdamore/tcell/v2"
)

// An EntryList is a list of entries to interact with.
// It implements gowid.IWidget by delegating to its presentation.
type EntryList struct {
	ui           *TUI
	presentation list.IWidget
	abstraction  *entryListAbstraction
}

// NewEntryList returns a new EntryList.
func NewEntryList(ui *TUI) *EntryList {
	abs := newEntryListAbstraction()

	return &EntryList{
		ui:           ui,
		presentation: list.New(abs),
		abstraction:  abs,
	}
}

// Register registers an entry to this list.
func (w *EntryList) Register(e *Entry) {
	n := w.abstraction.Add(e)
	if n == 1 {
		w.hackToDisplayFirstEntry()
	}
}

// Sort orders entries by the given field.
func (w *EntryList) Sort(field string) {
	if !w.abstraction.Sort(field) {
		msg := "No sort as been applied"
		if len(field) > 0 {
			msg = fmt.Sprintf("Failed to sort on %s, fallback on the entry's title", field)
		}

		w.ui.DisplayStatus(msg)
		return
	}

	if w.abstraction.Length() > 0 {
		w.hackToDisplayFirstEntry()
	}
}

// Hack to display first entry content.
func (w *EntryList) hackToDisplayFirstEntry() {
	w.ui.editor.SetTitle(w.abstraction.EntryAt(0).Title(), w.ui.App)
	w.ui.editor.SetSubWidget(w.abstraction.EntryAt(0).Editor(), w.ui.App)
}

////////////////////
//                //
// Delegates      //
//                //
////////////////////

// Render implements gowid.IWidget
func (w *EntryList) Render(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.ICanvas {
	return w.presentation.Render(size, focus, app)
}

// RenderSize implements gowid.IWidget
func (w *EntryList) RenderSize(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.IRenderBox {
	return w.presentation.RenderSize(size, focus, app)
}

// UserInput implements gowid.IWidget
func (w *EntryList) UserInput(ev any, size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) bool {
	ok := w.presentation.UserInput(ev, size, focus, app)

	if evm, ok := ev.(*tcell.EventMouse); !ok || evm.Buttons() != tcell.ButtonNone {
		// Avoid next action on mouse hover event
		if entry, ok := w.abstraction.At(w.abstraction.Focus()).(*Entry); ok {
			// Set editor name
			w.ui.editor.SetTitle(entry.Title(), app)
			// Display the text to edit
			w.ui.editor.SetSubWidget(entry.Editor(), app)
		}
	}
	return ok
}

// Selectable implements gowid.IWidget
func (w *EntryList) Selectable() bool {
	return w.presentation.Selectable()
}

////////////////////
//                //
// Abstraction    //
//                //
////////////////////

// An entryListAbstraction is a list of entries to interact with.
// It implements list.IWalker interface.
type entryListAbstraction struct {
	widgets   []*Entry
	registred map[string]bool
	focus     list.ListPos
}

func newEntryListAbstraction() *entryListAbstraction {
	return &entryListAbstraction{
		widgets:   make([]*Entry, 0),
		registred: make(map[string]bool, 0),
		focus:     0,
	}
}

func (w *entryListAbstraction) Add(entry *Entry) int {
	if w.registred[entry.ID] {
		// Won't be addressed until we want several clients to run on the same account.
		// The list refreshing is done by restarting the application.
		panic("TODO: update the entry properly")
	}

	w.widgets = append(w.widgets, entry)
	w.registred[entry.ID] = true
	return len(w.widgets)
}

func (w *entryListAbstraction) Sort(field string) bool {
	switch field {
	case "title":
		sort.Slice(w.widgets, func(i, j int) bool {
			return w.widgets[i].abstraction.Title < w.widgets[j].abstraction.Title
		})
	case "created_at":
		sort.Slice(w.widgets, func(i, j int) bool {
			return w.widgets[i].abstraction.CreatedAt.After(w.widgets[j].abstraction.CreatedAt)
		})
	case "updated_at":
		sort.Slice(w.widgets, func(i, j int) bool {
			return w.widgets[i].abstraction.UpdatedAt.After(w.widgets[j].abstraction.UpdatedAt)
		})
	default:
		return false
	}
	return true
}

func (w *entryListAbstraction) EntryAt(i int) *Entry {
	return w.widgets[i]
}

func (w *entryListAbstraction) First() list.IWalkerPosition {
	if len(w.widgets) == 0 {
		return nil
	}
	return list.ListPos(0)
}

func (w *entryListAbstraction) Last() list.IWalkerPosition {
	if len(w.widgets) == 0 {
		return nil
	}
	return list.ListPos(len(w.widgets) - 1)
}

func (w *entryListAbstraction) Length() int {
	return len(w.widgets)
}

func (w *entryListAbstraction) At(pos list.IWalkerPosition) gowid.IWidget {
	var res gowid.IWidget
	ipos := int(pos.(list.ListPos))
	if ipos >= 0 && ipos < w.Length() {
		res = w.widgets[ipos]
	}
	return res
}

func (w *entryListAbstraction) Focus() list.IWalkerPosition {
	return w.focus
}

func (w *entryListAbstraction) SetFocus(focus list.IWalkerPosition, app gowid.IApp) {
	w.focus = focus.(list.ListPos)
}

func (w *entryListAbstraction) Next(ipos list.IWalkerPosition) list.IWalkerPosition {
	pos := ipos.(list.ListPos)
	if int(pos) == w.Length()-1 {
		return list.ListPos(-1)
	}
	return pos + 1
}

func (w *entryListAbstraction) Previous(ipos list.IWalkerPosition) list.IWalkerPosition {
	pos := ipos.(list.ListPos)
	if pos-1 == -1 {
		return list.ListPos(-1)
	}
	return pos - 1
}
