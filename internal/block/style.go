package block

type Alignment string

const (
	AlignRight   Alignment = "right"
	AlignCenter  Alignment = "center"
	AlignLeft    Alignment = "left"
	AlignJustify Alignment = "justify"
)

type Layout string

const (
	LayoutInline Layout = "inline"
	LayoutWrap   Layout = "wrap"
	LayoutBreak  Layout = "break"
	LayoutFloat  Layout = "float"
)

// Style holds presentational attributes of a block. It never affects
// identity. Unset fields are nil or empty so that Merge can tell "not given"
// apart from "given as false/zero".
type Style struct {
	Bold            *bool     `json:"bold,omitempty"`
	Italic          *bool     `json:"italic,omitempty"`
	Underline       *bool     `json:"underline,omitempty"`
	Strikethrough   *bool     `json:"strikethrough,omitempty"`
	Color           string    `json:"color,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	FontSize        *float64  `json:"fontSize,omitempty"`
	FontFamily      string    `json:"fontFamily,omitempty"`
	Alignment       Alignment `json:"alignment,omitempty"`
	Layout          Layout    `json:"layout,omitempty"`
	ZIndex          *int      `json:"zIndex,omitempty"`
	Opacity         *float64  `json:"opacity,omitempty"`
	BorderRadius    *float64  `json:"borderRadius,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     *float64  `json:"borderWidth,omitempty"`
	BorderLeft      string    `json:"borderLeft,omitempty"`
	Padding         *float64  `json:"padding,omitempty"`
	Margin          *float64  `json:"margin,omitempty"`
}

// Merge returns s with every field that is set in patch overriding the
// corresponding field of s.
func (s Style) Merge(patch Style) Style {
	out := s.clone()
	mergeBool(&out.Bold, patch.Bold)
	mergeBool(&out.Italic, patch.Italic)
	mergeBool(&out.Underline, patch.Underline)
	mergeBool(&out.Strikethrough, patch.Strikethrough)
	mergeString(&out.Color, patch.Color)
	mergeString(&out.BackgroundColor, patch.BackgroundColor)
	mergeFloat(&out.FontSize, patch.FontSize)
	mergeString(&out.FontFamily, patch.FontFamily)
	if patch.Alignment != "" {
		out.Alignment = patch.Alignment
	}
	if patch.Layout != "" {
		out.Layout = patch.Layout
	}
	if patch.ZIndex != nil {
		out.ZIndex = copyPtr(patch.ZIndex)
	}
	mergeFloat(&out.Opacity, patch.Opacity)
	mergeFloat(&out.BorderRadius, patch.BorderRadius)
	mergeString(&out.BorderColor, patch.BorderColor)
	mergeFloat(&out.BorderWidth, patch.BorderWidth)
	mergeString(&out.BorderLeft, patch.BorderLeft)
	mergeFloat(&out.Padding, patch.Padding)
	mergeFloat(&out.Margin, patch.Margin)
	return out
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s.Bold == nil && s.Italic == nil && s.Underline == nil && s.Strikethrough == nil &&
		s.Color == "" && s.BackgroundColor == "" && s.FontSize == nil && s.FontFamily == "" &&
		s.Alignment == "" && s.Layout == "" && s.ZIndex == nil && s.Opacity == nil &&
		s.BorderRadius == nil && s.BorderColor == "" && s.BorderWidth == nil &&
		s.BorderLeft == "" && s.Padding == nil && s.Margin == nil
}

func (s Style) clone() Style {
	out := s
	out.Bold = copyPtr(s.Bold)
	out.Italic = copyPtr(s.Italic)
	out.Underline = copyPtr(s.Underline)
	out.Strikethrough = copyPtr(s.Strikethrough)
	out.FontSize = copyPtr(s.FontSize)
	out.ZIndex = copyPtr(s.ZIndex)
	out.Opacity = copyPtr(s.Opacity)
	out.BorderRadius = copyPtr(s.BorderRadius)
	out.BorderWidth = copyPtr(s.BorderWidth)
	out.Padding = copyPtr(s.Padding)
	out.Margin = copyPtr(s.Margin)
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		*dst = copyPtr(src)
	}
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = copyPtr(src)
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Bool returns a pointer to v, for building styles.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v, for building styles.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building styles.
func Int(v int) *int { return &v }
