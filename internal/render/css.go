package render

import (
	"fmt"
	"strings"

	"github.com/sakif/yawmiyat/internal/block"
)

// CSS serializes a style into an inline CSS declaration list. Values that
// contain anything beyond a conservative character set are dropped, so the
// result is safe to place in a style attribute.
func CSS(s block.Style) string {
	var decls []string
	add := func(prop, value string) {
		if value == "" || !safeCSSValue(value) {
			return
		}
		decls = append(decls, prop+": "+value)
	}
	px := func(p *float64) string {
		if p == nil {
			return ""
		}
		return number(*p) + "px"
	}

	if s.Bold != nil && *s.Bold {
		add("font-weight", "bold")
	}
	if s.Italic != nil && *s.Italic {
		add("font-style", "italic")
	}
	var deco []string
	if s.Underline != nil && *s.Underline {
		deco = append(deco, "underline")
	}
	if s.Strikethrough != nil && *s.Strikethrough {
		deco = append(deco, "line-through")
	}
	add("text-decoration", strings.Join(deco, " "))
	add("color", s.Color)
	add("background-color", s.BackgroundColor)
	add("font-size", px(s.FontSize))
	add("font-family", s.FontFamily)
	add("text-align", string(s.Alignment))
	switch s.Layout {
	case block.LayoutInline:
		add("display", "inline-block")
	case block.LayoutBreak:
		add("display", "block")
	case block.LayoutFloat:
		add("float", "right")
	}
	if s.ZIndex != nil {
		add("z-index", fmt.Sprint(*s.ZIndex))
	}
	if s.Opacity != nil {
		add("opacity", number(*s.Opacity))
	}
	add("border-radius", px(s.BorderRadius))
	if s.BorderWidth != nil {
		color := s.BorderColor
		if color == "" {
			color = "currentColor"
		}
		add("border", px(s.BorderWidth)+" solid "+color)
	}
	add("border-left", s.BorderLeft)
	add("padding", px(s.Padding))
	add("margin", px(s.Margin))

	return strings.Join(decls, "; ")
}

func safeCSSValue(v string) bool {
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '#', r == '.', r == '%', r == ' ', r == ',', r == '-':
		default:
			return false
		}
	}
	return true
}
