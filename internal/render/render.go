// Package render turns blocks into display descriptors.
//
// Render is pure: it reads a block and the editor state and returns a View
// that a front end (the HTML page in this package, or a JSON client) can
// draw without knowing the variant rules.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sakif/yawmiyat/internal/block"
)

// TextPlaceholder is shown for an empty text block.
const TextPlaceholder = "اكتب هنا..."

// State is the editor state a view depends on.
type State struct {
	Selected string
	Editing  string
}

// Kind tells the front end which widget draws a view.
type Kind string

const (
	KindText      Kind = "text"
	KindChip      Kind = "chip"
	KindCard      Kind = "card"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindProgress  Kind = "progress"
	KindChecklist Kind = "checklist"
	KindStamp     Kind = "stamp"
	KindShape     Kind = "shape"
)

type Action string

const (
	ActionSelect    Action = "select"
	ActionEdit      Action = "edit"
	ActionStyle     Action = "style"
	ActionDuplicate Action = "duplicate"
	ActionDelete    Action = "delete"
)

// Line is one row of a checklist view.
type Line struct {
	Text     string `json:"text"`
	Checked  bool   `json:"checked"`
	Quantity string `json:"quantity,omitempty"`
}

// ShapeView is the geometry of a shape block.
type ShapeView struct {
	Type        block.ShapeType `json:"type"`
	FillColor   string          `json:"fillColor"`
	StrokeColor string          `json:"strokeColor"`
	StrokeWidth float64         `json:"strokeWidth"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
}

// View is the display descriptor of one block.
type View struct {
	BlockID     string        `json:"blockId"`
	Variant     block.Variant `json:"variant"`
	Kind        Kind          `json:"kind"`
	Title       string        `json:"title,omitempty"`
	Body        string        `json:"body,omitempty"`
	Lines       []Line        `json:"lines,omitempty"`
	Caption     string        `json:"caption,omitempty"`
	Badge       string        `json:"badge,omitempty"`
	Color       string        `json:"color,omitempty"`
	Progress    float64       `json:"progress,omitempty"`
	Shape       *ShapeView    `json:"shape,omitempty"`
	CSS         string        `json:"css,omitempty"`
	Selected    bool          `json:"selected"`
	Editing     bool          `json:"editing"`
	Placeholder bool          `json:"placeholder,omitempty"`
	Actions     []Action      `json:"actions"`
}

var commonActions = []Action{ActionSelect, ActionStyle, ActionDuplicate, ActionDelete}

// Render builds the view of b under st.
func Render(b block.Block, st State) View {
	v := View{
		BlockID:  b.ID,
		Variant:  b.Variant(),
		CSS:      CSS(b.Style),
		Selected: st.Selected != "" && st.Selected == b.ID,
		Actions:  append([]Action(nil), commonActions...),
	}

	switch d := b.Data.(type) {
	case nil, block.TextData:
		v.Kind = KindText
		v.Editing = st.Editing != "" && st.Editing == b.ID
		v.Body = b.Content
		if b.Content == "" && !v.Editing {
			v.Body = TextPlaceholder
			v.Placeholder = true
		}
		v.Actions = append([]Action{ActionSelect, ActionEdit}, commonActions[1:]...)

	case block.TagData:
		v.Kind = KindChip
		v.Body = b.Content
		v.Color = d.Color

	case block.AppointmentData:
		a := d.Appointment
		v.Kind = KindCard
		v.Title = a.Title
		parts := []string{a.Date, a.Time}
		if a.Location != "" {
			parts = append(parts, a.Location)
		}
		v.Caption = strings.Join(parts, " • ")
		v.Body = a.Notes

	case block.QuoteData:
		v.Kind = KindQuote
		v.Body = `"` + b.Content + `"`
		if d.Author != "" {
			v.Caption = "— " + d.Author
		}

	case block.CodeData:
		v.Kind = KindCode
		v.Badge = d.Language
		v.Body = b.Content

	case block.TrackerData:
		t := d.Tracker
		v.Kind = KindProgress
		v.Title = strings.TrimSpace(t.Icon + " " + t.Name)
		v.Caption = fmt.Sprintf("%s / %s %s", number(t.Current), number(t.Target), t.Unit)
		v.Progress = t.Progress()
		v.Color = t.Color

	case block.ShoppingListData:
		v.Kind = KindChecklist
		v.Title = b.Content
		done := 0
		for _, it := range d.Items {
			line := Line{Text: it.Name, Checked: it.Checked}
			if it.Quantity != nil {
				line.Quantity = number(*it.Quantity)
			}
			if it.Checked {
				done++
			}
			v.Lines = append(v.Lines, line)
		}
		v.Caption = fmt.Sprintf("%d/%d", done, len(d.Items))

	case block.TimeData:
		v.Kind = KindStamp
		v.Body = b.Content

	case block.ShapeData:
		v.Kind = KindShape
		sv := &ShapeView{
			Type:        d.ShapeType,
			FillColor:   d.FillColor,
			StrokeColor: d.StrokeColor,
			StrokeWidth: d.StrokeWidth,
			Width:       100,
			Height:      100,
		}
		if b.Size != nil {
			sv.Width, sv.Height = b.Size.Width, b.Size.Height
		}
		if b.Position != nil {
			sv.X, sv.Y = b.Position.X, b.Position.Y
		}
		v.Shape = sv

	default:
		v.Kind = KindText
		v.Body = b.Content
	}

	return v
}

// RenderAll renders blocks in order.
func RenderAll(blocks []block.Block, st State) []View {
	views := make([]View, len(blocks))
	for i, b := range blocks {
		views[i] = Render(b, st)
	}
	return views
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
