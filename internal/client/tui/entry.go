package tui

import (
	"time"

	"github.com/bep/debounce"
	"github.com/gcla/gowid"
	"github.com/gcla/gowid/gwutil"
	"github.com/gcla/gowid/widgets/columns"
	"github.com/gcla/gowid/widgets/edit"
	"github.com/gcla/gowid/widgets/selectable"
	"github.com/gcla/gowid/widgets/styled"
	"github.com/gcla/gowid/widgets/text"
	"github.com/gcla/gowid/widgets/vscroll"
	"github.com/gdamore/tcell/v2"
	"github.com/mdouchement/daybook/pkg/libday"
)

// An Entry is the graphical representation of a libday.Entry.
type Entry struct {
	ID                 string
	presentation       gowid.IWidget
	abstraction        *libday.Entry
	editorPresentation *EntryEditor
}

// NewEntry returns a new Entry.
// Edits are debounced before being pushed to the server through sync.
func NewEntry(entry *libday.Entry, sync func(entry *libday.Entry) time.Time) *Entry {
	editor := edit.New(edit.Options{Text: entry.Content})
	debounced := debounce.New(500 * time.Millisecond)
	editor.OnTextSet(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: func(app gowid.IApp, iw gowid.IWidget) {
		debounced(func() {
			entry.Content = editor.Text()
			entry.UpdatedAt = sync(entry)
		})
	}})

	return &Entry{
		ID: entry.ID,
		presentation: selectable.New(
			styled.NewExt(
				text.New(entry.Title),
				gowid.MakePaletteRef("normal"), gowid.MakePaletteRef("focused"),
			),
		),
		editorPresentation: newEntryEditor(editor),
		abstraction:        entry,
	}
}

// Title returns the name of the editor.
func (w *Entry) Title() string {
	return w.abstraction.Title
}

// Editor returns the editor widget of the Entry.
func (w *Entry) Editor() *EntryEditor {
	return w.editorPresentation
}

////////////////////
//                //
// Delegates      //
//                //
////////////////////

// Render implements gowid.IWidget
func (w *Entry) Render(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.ICanvas {
	return w.presentation.Render(size, focus, app)
}

// RenderSize implements gowid.IWidget
func (w *Entry) RenderSize(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.IRenderBox {
	return w.presentation.RenderSize(size, focus, app)
}

// UserInput implements gowid.IWidget
func (w *Entry) UserInput(ev any, size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) bool {
	return w.presentation.UserInput(ev, size, focus, app)
}

// Selectable implements gowid.IWidget
func (w *Entry) Selectable() bool {
	return w.presentation.Selectable()
}

//
//
//
//
//
//
//

// An EntryEditor is the graphical representation of editable entry content.
type EntryEditor struct {
	*columns.Widget
	e        *edit.Widget
	sb       *vscroll.Widget
	goUpDown int // positive means down
	pgUpDown int // positive means down
}

func newEntryEditor(e *edit.Widget) *EntryEditor {
	sb := vscroll.NewExt(vscroll.VerticalScrollbarUnicodeRunes)
	ee := &EntryEditor{
		Widget: columns.New([]gowid.IContainerWidget{
			&gowid.ContainerWidget{IWidget: e, D: gowid.RenderWithWeight{W: 1}},
			&gowid.ContainerWidget{IWidget: sb, D: gowid.RenderWithUnits{U: 1}},
		}),
		e:        e,
		sb:       sb,
		goUpDown: 0,
		pgUpDown: 0,
	}
	sb.OnClickAbove(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: ee.clickUp})
	sb.OnClickBelow(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: ee.clickDown})
	sb.OnClickUpArrow(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: ee.clickUpArrow})
	sb.OnClickDownArrow(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: ee.clickDownArrow})
	return ee
}

func (w *EntryEditor) clickUp(app gowid.IApp, iw gowid.IWidget) {
	w.pgUpDown--
}

func (w *EntryEditor) clickDown(app gowid.IApp, iw gowid.IWidget) {
	w.pgUpDown++
}

func (w *EntryEditor) clickUpArrow(app gowid.IApp, iw gowid.IWidget) {
	w.goUpDown--
}

func (w *EntryEditor) clickDownArrow(app gowid.IApp, iw gowid.IWidget) {
	w.goUpDown++
}

// UserInput implements gowid.IWidget
func (w *EntryEditor) UserInput(ev any, size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) bool {
	box, _ := size.(gowid.IRenderBox)
	w.sb.Top, w.sb.Middle, w.sb.Bottom = w.e.CalculateTopMiddleBottom(gowid.MakeRenderBox(box.BoxColumns()-1, box.BoxRows()))

	// Remap events
	if k, ok := ev.(*tcell.EventKey); ok {
		switch k.Key() {
		case tcell.KeyHome:
			ev = tcell.NewEventKey(tcell.KeyCtrlA, ' ', tcell.ModNone) // Start of line defined by edit widget
		case tcell.KeyEnd:
			ev = tcell.NewEventKey(tcell.KeyCtrlE, ' ', tcell.ModNone) // End of line defined by edit widget
		}
	}

	handled := w.Widget.UserInput(ev, size, focus, app)
	if handled {
		w.Widget.SetFocus(app, 0)
	}

	return handled
}

// Render implements gowid.IWidget
func (w *EntryEditor) Render(size gowid.IRenderSize, focus gowid.Selector, app gowid.IApp) gowid.ICanvas {
	box, _ := size.(gowid.IRenderBox)
	ecols := box.BoxColumns() - 1
	ebox := gowid.MakeRenderBox(ecols, box.BoxRows())
	if w.goUpDown != 0 || w.pgUpDown != 0 {
		w.e.SetLinesFromTop(gwutil.Max(0, w.e.LinesFromTop()+w.goUpDown+(w.pgUpDown*box.BoxRows())), app)
		txt := w.e.MakeText()
		layout := text.MakeTextLayout(txt.Content(), ecols, txt.Wrap(), gowid.HAlignLeft{})
		_, y := text.GetCoordsFromCursorPos(w.e.CursorPos(), ecols, layout, w.e)
		if y < w.e.LinesFromTop() {
			for i := y; i < w.e.LinesFromTop(); i++ {
				w.e.DownLines(ebox, false, app)
			}
		} else if y >= w.e.LinesFromTop()+box.BoxRows() {
			for i := w.e.LinesFromTop() + box.BoxRows(); i <= y; i++ {
				w.e.UpLines(ebox, false, app)
			}
		}
	}
	w.goUpDown = 0
	w.pgUpDown = 0
	w.sb.Top, w.sb.Middle, w.sb.Bottom = w.e.CalculateTopMiddleBottom(ebox)

	return w.Widget.Render(size, focus, app)
}
