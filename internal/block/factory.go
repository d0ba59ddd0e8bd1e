package block

import (
	"strings"
	"time"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/calendar"
)

// Variant defaults applied by Create.
const (
	DefaultTagColor          = "#8b5cf6"
	DefaultCodeLanguage      = "javascript"
	DefaultShoppingListTitle = "قائمة التسوق"
	DefaultShapeFill         = "#8b5cf6"
	DefaultShapeStroke       = "#000000"
	DefaultTrackerIcon       = "💧"
	DefaultTrackerTarget     = 8
	DefaultTrackerUnit       = "كوب"
	DefaultTrackerColor      = "#0ea5e9"
)

// Input is what the editor collects before inserting a block. Only the
// fields relevant to the requested variant are read.
type Input struct {
	Text string // text and quote body
	Code string
	Name string // tag label, tracker name

	Author   string
	Language string
	Color    string // tag or tracker color

	Title    string // appointment title, shopping-list title
	Date     string
	Time     string
	Location string

	Icon    string
	Target  float64
	Current float64
	Unit    string

	Items []ItemInput

	ShapeType ShapeType
	FillColor string
	Position  *Point

	// Now stamps time blocks; the zero value means time.Now().
	Now time.Time
}

// ItemInput is one line of a shopping list being composed.
type ItemInput struct {
	Name     string
	Quantity *float64
	Checked  bool
}

// Create builds a new block of variant v from in. It fails with an
// *apperror.ValidationError naming every required field that is blank.
func Create(v Variant, in Input) (Block, error) {
	if missing := requiredMissing(v, in); len(missing) > 0 {
		return Block{}, apperror.MissingFields(string(v), missing...)
	}

	b := Block{ID: NewID()}

	switch v {
	case VariantText:
		b.Content = in.Text
		b.Data = TextData{}

	case VariantTag:
		color := orDefault(in.Color, DefaultTagColor)
		b.Content = in.Name
		b.Data = TagData{Color: color}
		b.Style = Style{
			BackgroundColor: color,
			Color:           "#ffffff",
			BorderRadius:    Float(16),
			Padding:         Float(4),
		}

	case VariantAppointment:
		b.Content = in.Title
		b.Data = AppointmentData{Appointment: Appointment{
			ID:       NewID(),
			Title:    in.Title,
			Date:     in.Date,
			Time:     in.Time,
			Location: in.Location,
		}}
		b.Style = Style{
			BackgroundColor: "#fef3c7",
			BorderRadius:    Float(8),
			Padding:         Float(12),
		}

	case VariantQuote:
		b.Content = in.Text
		b.Data = QuoteData{Author: in.Author}
		b.Style = Style{
			BackgroundColor: "#f5f3ff",
			BorderLeft:      "4px solid #8b5cf6",
			BorderRadius:    Float(0),
			Padding:         Float(16),
			Italic:          Bool(true),
		}

	case VariantCode:
		b.Content = in.Code
		b.Data = CodeData{Language: orDefault(in.Language, DefaultCodeLanguage)}
		b.Style = Style{
			BackgroundColor: "#1e293b",
			Color:           "#e2e8f0",
			BorderRadius:    Float(8),
			Padding:         Float(16),
			FontFamily:      "monospace",
		}

	case VariantTracker:
		target := in.Target
		if target <= 0 {
			target = DefaultTrackerTarget
		}
		color := orDefault(in.Color, DefaultTrackerColor)
		b.Content = in.Name
		b.Data = TrackerData{Tracker: Tracker{
			ID:      NewID(),
			Name:    in.Name,
			Icon:    orDefault(in.Icon, DefaultTrackerIcon),
			Target:  target,
			Current: in.Current,
			Unit:    orDefault(in.Unit, DefaultTrackerUnit),
			Color:   color,
		}}
		b.Style = Style{
			BackgroundColor: color + "20",
			BorderRadius:    Float(8),
			Padding:         Float(12),
		}

	case VariantShoppingList:
		items := make([]ShoppingItem, 0, len(in.Items))
		for _, it := range in.Items {
			if isBlank(it.Name) {
				continue
			}
			items = append(items, ShoppingItem{
				ID:       NewID(),
				Name:     it.Name,
				Checked:  it.Checked,
				Quantity: copyPtr(it.Quantity),
			})
		}
		b.Content = orDefault(in.Title, DefaultShoppingListTitle)
		b.Data = ShoppingListData{Items: items}
		b.Style = Style{
			BackgroundColor: "#ecfdf5",
			BorderRadius:    Float(8),
			Padding:         Float(12),
		}

	case VariantTime:
		now := in.Now
		if now.IsZero() {
			now = time.Now()
		}
		b.Content = calendar.FormatTime(now) + " - " + calendar.FormatArabic(now)
		b.Data = TimeData{}
		b.Style = Style{
			BackgroundColor: "#f0f9ff",
			Color:           "#0369a1",
			BorderRadius:    Float(8),
			Padding:         Float(12),
		}

	case VariantShape:
		shape := in.ShapeType
		if !shape.Valid() {
			shape = ShapeRectangle
		}
		fill := orDefault(in.FillColor, DefaultShapeFill)
		radius := 8.0
		if shape == ShapeCircle {
			radius = 999
		}
		b.Data = ShapeData{
			ShapeType:   shape,
			FillColor:   fill,
			StrokeColor: DefaultShapeStroke,
			StrokeWidth: 2,
		}
		b.Size = &Size{Width: 100, Height: 100}
		if in.Position != nil {
			p := *in.Position
			b.Position = &p
		}
		b.Style = Style{
			BorderRadius:    Float(radius),
			BackgroundColor: fill,
		}

	default:
		return Block{}, apperror.ValidationFailed("type", "unknown block type "+string(v))
	}

	return b, nil
}

// requiredMissing returns the names of v's required inputs that are blank.
func requiredMissing(v Variant, in Input) []string {
	var missing []string
	check := func(name, value string) {
		if isBlank(value) {
			missing = append(missing, name)
		}
	}

	switch v {
	case VariantTag:
		check("name", in.Name)
	case VariantAppointment:
		check("title", in.Title)
		check("date", in.Date)
		check("time", in.Time)
	case VariantQuote:
		check("text", in.Text)
	case VariantCode:
		check("code", in.Code)
	case VariantTracker:
		check("name", in.Name)
	case VariantShoppingList:
		n := 0
		for _, it := range in.Items {
			if !isBlank(it.Name) {
				n++
			}
		}
		if n == 0 {
			missing = append(missing, "items")
		}
	}
	return missing
}

// NeedsSavedTag reports whether inserting b should also save its label as a
// reusable tag, i.e. b is a tag block whose name is not among savedNames.
func NeedsSavedTag(b Block, savedNames []string) bool {
	if b.Variant() != VariantTag {
		return false
	}
	for _, name := range savedNames {
		if name == b.Content {
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func orDefault(s, def string) string {
	if isBlank(s) {
		return def
	}
	return s
}
