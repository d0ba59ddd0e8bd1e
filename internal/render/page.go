package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page renders whole entries as standalone RTL HTML documents. Templates are
// parsed once and reused.
type Page struct {
	tmpl *template.Template
}

func NewPage() (*Page, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		// CSS() only emits declarations built from a restricted character set.
		"css": func(s string) template.CSS { return template.CSS(s) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parsing templates: %w", err)
	}
	return &Page{tmpl: tmpl}, nil
}

type pageData struct {
	Title     string
	DateAR    string
	HijriDate string
	Mood      string
	MoodIcon  string
	Tags      []string
	Favorite  bool
	Views     []View
}

// HTML writes entry as a page.
func (p *Page) HTML(w io.Writer, entry model.Entry, st State) error {
	data := pageData{
		Title:    entry.Title,
		DateAR:   calendar.FormatDayArabic(entry.Date),
		Tags:     entry.Tags,
		Favorite: entry.IsFavorite,
		Views:    RenderAll(entry.Content, st),
	}
	if data.Title == "" {
		data.Title = "بدون عنوان"
	}
	if d, err := calendar.ParseDay(entry.Date, time.UTC); err == nil {
		data.HijriDate = calendar.FormatHijri(d)
	}
	if entry.Mood.Valid() {
		data.Mood = entry.Mood.Arabic()
		data.MoodIcon = entry.Mood.Icon()
	}

	if err := p.tmpl.ExecuteTemplate(w, "entry", data); err != nil {
		return fmt.Errorf("render: executing entry template: %w", err)
	}
	return nil
}
