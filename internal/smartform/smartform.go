// Package smartform renders templates into fillable forms, validates and
// coerces submitted values, and turns a submission into a journal entry.
package smartform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/model"
)

// Field bounds used when a template leaves them out.
const (
	DefaultRatingMax = 5
	DefaultSliderMin = 1
	DefaultSliderMax = 10
)

// FieldView is the render descriptor of one field, with bounds resolved.
type FieldView struct {
	ID          string          `json:"id"`
	Type        model.FieldType `json:"type"`
	Input       string          `json:"input"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder,omitempty"`
	Required    bool            `json:"required"`
	Options     []string        `json:"options,omitempty"`
	Min         float64         `json:"min,omitempty"`
	Max         float64         `json:"max,omitempty"`
}

var inputs = map[model.FieldType]string{
	model.FieldText:      "textarea",
	model.FieldNumber:    "number",
	model.FieldRating:    "stars",
	model.FieldSlider:    "range",
	model.FieldSelect:    "select",
	model.FieldDate:      "date",
	model.FieldTime:      "time",
	model.FieldImage:     "file",
	model.FieldSignature: "canvas",
}

// Fields returns the render descriptors of t's fields in order.
func Fields(t model.Template) []FieldView {
	views := make([]FieldView, len(t.Fields))
	for i, f := range t.Fields {
		v := FieldView{
			ID:          f.ID,
			Type:        f.Type,
			Input:       inputs[f.Type],
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    f.Required,
			Options:     f.Options,
		}
		switch f.Type {
		case model.FieldRating:
			v.Min, v.Max = 1, ratingMax(f)
		case model.FieldSlider:
			v.Min, v.Max = sliderBounds(f)
		}
		views[i] = v
	}
	return views
}

func ratingMax(f model.TemplateField) float64 {
	if f.Max != nil && *f.Max >= 1 {
		return *f.Max
	}
	return DefaultRatingMax
}

func sliderBounds(f model.TemplateField) (float64, float64) {
	lo, hi := float64(DefaultSliderMin), float64(DefaultSliderMax)
	if f.Min != nil {
		lo = *f.Min
	}
	if f.Max != nil {
		hi = *f.Max
	}
	return lo, hi
}

// Filled reports whether v counts as an answer: not nil and not an empty or
// whitespace-only string.
func Filled(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	}
	return true
}

// Coerce converts a raw submitted value into the field's canonical type. An
// unfilled value yields (nil, nil).
func Coerce(f model.TemplateField, raw any) (any, error) {
	if !Filled(raw) {
		return nil, nil
	}

	switch f.Type {
	case model.FieldText:
		return toString(raw), nil

	case model.FieldNumber:
		n, ok := toFloat(raw)
		if !ok {
			return 0.0, nil
		}
		return n, nil

	case model.FieldRating:
		return inRange(f, raw, 1, ratingMax(f))

	case model.FieldSlider:
		lo, hi := sliderBounds(f)
		return inRange(f, raw, lo, hi)

	case model.FieldSelect:
		s := toString(raw)
		for _, opt := range f.Options {
			if opt == s {
				return s, nil
			}
		}
		return nil, apperror.ValidationFailed(f.ID, fmt.Sprintf("%s: %q is not one of the options", f.Label, s))

	case model.FieldDate:
		s := toString(raw)
		if _, err := time.Parse(calendar.DayLayout, s); err != nil {
			return nil, apperror.ValidationFailed(f.ID, fmt.Sprintf("%s: date must be YYYY-MM-DD", f.Label))
		}
		return s, nil

	case model.FieldTime:
		s := toString(raw)
		if _, err := time.Parse("15:04", s); err != nil {
			return nil, apperror.ValidationFailed(f.ID, fmt.Sprintf("%s: time must be HH:MM", f.Label))
		}
		return s, nil

	case model.FieldImage, model.FieldSignature:
		s := toString(raw)
		if !strings.HasPrefix(s, "data:") {
			return nil, apperror.ValidationFailed(f.ID, fmt.Sprintf("%s: expected a data URL", f.Label))
		}
		return s, nil
	}

	return nil, apperror.ValidationFailed(f.ID, fmt.Sprintf("unknown field type %s", f.Type))
}

func inRange(f model.TemplateField, raw any, lo, hi float64) (any, error) {
	n, ok := toFloat(raw)
	if !ok {
		return nil, apperror.ValidationFailed(f.ID, fmt.Sprintf("%s: expected a number", f.Label))
	}
	n = math.Round(n)
	if n < lo || n > hi {
		return nil, apperror.ValidationFailed(f.ID,
			fmt.Sprintf("%s: must be between %s and %s", f.Label, formatNumber(lo), formatNumber(hi)))
	}
	return int(n), nil
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return n, err == nil
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Completion is the percentage of the template's fields that are required
// and answered. Optional fields sit in the denominator but never count as
// complete, so a form with optional fields cannot reach 100%.
func Completion(t model.Template, values map[string]any) int {
	if len(t.Fields) == 0 {
		return 0
	}
	filled := 0
	for _, f := range t.Fields {
		if f.Required && Filled(values[f.ID]) {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(t.Fields)) * 100))
}

// Submit validates values against t and returns the coerced submission.
// Values for unknown field ids are dropped.
func Submit(t model.Template, values map[string]any, now time.Time) (model.FormSubmission, error) {
	out := make(map[string]any, len(t.Fields))
	var missing []string
	for _, f := range t.Fields {
		v, err := Coerce(f, values[f.ID])
		if err != nil {
			return model.FormSubmission{}, err
		}
		if v == nil {
			if f.Required {
				missing = append(missing, f.Label)
			}
			continue
		}
		out[f.ID] = v
	}
	if len(missing) > 0 {
		return model.FormSubmission{}, apperror.ValidationFailed("values",
			"required fields are empty: "+strings.Join(missing, ", "))
	}

	completed := now
	return model.FormSubmission{TemplateID: t.ID, Values: out, CompletedAt: &completed}, nil
}

// ToEntry turns a submission into a new entry dated on the submission day.
// Each answered field becomes a "label: value" text block, in field order.
func ToEntry(t model.Template, sub model.FormSubmission) model.Entry {
	when := time.Now()
	if sub.CompletedAt != nil {
		when = *sub.CompletedAt
	}

	var content []block.Block
	for _, f := range t.Fields {
		v, ok := sub.Values[f.ID]
		if !ok || !Filled(v) {
			continue
		}
		content = append(content, block.Block{
			ID:      block.NewID(),
			Content: f.Label + ": " + toString(v),
			Data:    block.TextData{},
		})
	}

	return model.Entry{
		Title:      t.Name + " - " + calendar.FormatArabic(when),
		Content:    content,
		Tags:       []string{},
		Date:       when.Format(calendar.DayLayout),
		TemplateID: t.ID,
		SmartForms: []model.FormSubmission{sub},
	}
}
