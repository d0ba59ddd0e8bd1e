package model

import "time"

// FieldType is the kind of input a template field collects.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldNumber    FieldType = "number"
	FieldRating    FieldType = "rating"
	FieldSignature FieldType = "signature"
	FieldImage     FieldType = "image"
	FieldSlider    FieldType = "slider"
	FieldSelect    FieldType = "select"
	FieldDate      FieldType = "date"
	FieldTime      FieldType = "time"
)

var FieldTypes = []FieldType{
	FieldText, FieldNumber, FieldRating, FieldSignature, FieldImage,
	FieldSlider, FieldSelect, FieldDate, FieldTime,
}

func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// TemplateField is one input of a smart form.
type TemplateField struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
}

// Category groups templates in the picker.
type Category string

const (
	CategoryDaily     Category = "daily"
	CategoryHealth    Category = "health"
	CategoryWork      Category = "work"
	CategorySpiritual Category = "spiritual"
	CategoryPersonal  Category = "personal"
	CategoryCustom    Category = "custom"
)

// CategoryInfo is the display name and icon of a category.
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
	Icon string   `json:"icon"`
}

var TemplateCategories = []CategoryInfo{
	{CategoryDaily, "يومي", "📅"},
	{CategoryHealth, "صحة", "🏃"},
	{CategoryWork, "عمل", "💼"},
	{CategorySpiritual, "روحاني", "🕌"},
	{CategoryPersonal, "شخصي", "👤"},
	{CategoryCustom, "مخصص", "✨"},
}

// Template is a named, ordered list of fields. Built-in templates have
// BuiltIn set and no owner; they cannot be edited or deleted.
type Template struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Category    Category        `json:"category"`
	Fields      []TemplateField `json:"fields"`
	BuiltIn     bool            `json:"builtIn,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Field returns the field with the given id.
func (t *Template) Field(id string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return TemplateField{}, false
}
