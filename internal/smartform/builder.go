package smartform

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/model"
)

// Direction moves a field one slot.
type Direction int

const (
	Up Direction = iota
	Down
)

// Builder assembles a user template field by field.
type Builder struct {
	Name        string
	Description string
	Icon        string
	Category    model.Category
	Fields      []model.TemplateField
}

func NewBuilder() *Builder {
	return &Builder{Icon: "📝", Category: model.CategoryDaily}
}

// FromTemplate starts a builder from an existing template, for editing.
func FromTemplate(t model.Template) *Builder {
	return &Builder{
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
		Category:    t.Category,
		Fields:      append([]model.TemplateField(nil), t.Fields...),
	}
}

// AddField appends a field of type ft with a numbered default label.
func (b *Builder) AddField(ft model.FieldType) (model.TemplateField, error) {
	if !ft.Valid() {
		return model.TemplateField{}, apperror.ValidationFailed("type", fmt.Sprintf("unknown field type %s", ft))
	}
	f := model.TemplateField{
		ID:    uuid.NewString(),
		Type:  ft,
		Label: fmt.Sprintf("حقل %d", len(b.Fields)+1),
	}
	switch ft {
	case model.FieldRating, model.FieldSlider:
		lo, hi := 1.0, 5.0
		f.Min, f.Max = &lo, &hi
	case model.FieldSelect:
		f.Options = []string{"خيار 1", "خيار 2"}
	}
	b.Fields = append(b.Fields, f)
	return f, nil
}

// MoveField swaps field i with its neighbour. Moves past either end are
// ignored.
func (b *Builder) MoveField(i int, dir Direction) {
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if i < 0 || i >= len(b.Fields) || j < 0 || j >= len(b.Fields) {
		return
	}
	b.Fields[i], b.Fields[j] = b.Fields[j], b.Fields[i]
}

// RemoveField drops field i; out-of-range indexes are ignored.
func (b *Builder) RemoveField(i int) {
	if i < 0 || i >= len(b.Fields) {
		return
	}
	b.Fields = append(b.Fields[:i], b.Fields[i+1:]...)
}

// Validate checks that the template can be saved.
func (b *Builder) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return apperror.ValidationFailed("name", "template name is required")
	}
	if len(b.Fields) == 0 {
		return apperror.ValidationFailed("fields", "a template needs at least one field")
	}
	for _, f := range b.Fields {
		if !f.Type.Valid() {
			return apperror.ValidationFailed("fields", fmt.Sprintf("field %s has unknown type %s", f.ID, f.Type))
		}
		if strings.TrimSpace(f.Label) == "" {
			return apperror.ValidationFailed("fields", fmt.Sprintf("field %s needs a label", f.ID))
		}
		if f.Type == model.FieldSelect && len(f.Options) == 0 {
			return apperror.ValidationFailed("fields", fmt.Sprintf("select field %q needs options", f.Label))
		}
	}
	return nil
}

// Build validates and returns the template. Fields without an id get one.
func (b *Builder) Build(now time.Time) (model.Template, error) {
	if err := b.Validate(); err != nil {
		return model.Template{}, err
	}
	fields := append([]model.TemplateField(nil), b.Fields...)
	for i := range fields {
		if fields[i].ID == "" {
			fields[i].ID = uuid.NewString()
		}
	}
	icon := b.Icon
	if icon == "" {
		icon = "📝"
	}
	category := b.Category
	if category == "" {
		category = model.CategoryCustom
	}
	return model.Template{
		Name:        strings.TrimSpace(b.Name),
		Description: strings.TrimSpace(b.Description),
		Icon:        icon,
		Category:    category,
		Fields:      fields,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
