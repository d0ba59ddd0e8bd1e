// Package model defines the data structures shared by every layer of the
// journal: entries, tags, templates, users and their settings.
//
// Structs carry `json:"..."` tags matching the wire format the web client
// and the export files use, so the same value flows from the database to an
// HTTP response or a backup file without translation.
package model

import (
	"time"

	"github.com/sakif/yawmiyat/internal/block"
)

// Mood is the optional emotional label of an entry.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodNeutral  Mood = "neutral"
	MoodExcited  Mood = "excited"
	MoodTired    Mood = "tired"
	MoodAnxious  Mood = "anxious"
	MoodGrateful Mood = "grateful"
	MoodAngry    Mood = "angry"
)

// Moods lists every mood in display order.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodNeutral, MoodExcited,
	MoodTired, MoodAnxious, MoodGrateful, MoodAngry,
}

var moodNamesAR = map[Mood]string{
	MoodHappy:    "سعيد",
	MoodSad:      "حزين",
	MoodNeutral:  "محايد",
	MoodExcited:  "متحمس",
	MoodTired:    "مرهق",
	MoodAnxious:  "قلق",
	MoodGrateful: "ممتن",
	MoodAngry:    "غاضب",
}

var moodIcons = map[Mood]string{
	MoodHappy:    "😊",
	MoodSad:      "😢",
	MoodNeutral:  "😐",
	MoodExcited:  "🤩",
	MoodTired:    "😴",
	MoodAnxious:  "😰",
	MoodGrateful: "🥰",
	MoodAngry:    "😠",
}

// Valid reports whether m is one of the known moods. The empty mood is not valid;
// callers treat it as "no mood".
func (m Mood) Valid() bool {
	_, ok := moodNamesAR[m]
	return ok
}

// Arabic returns the Arabic display name, or the raw value for unknown moods.
func (m Mood) Arabic() string {
	if name, ok := moodNamesAR[m]; ok {
		return name
	}
	return string(m)
}

func (m Mood) Icon() string {
	return moodIcons[m]
}

// Location is where an entry was written.
type Location struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Notes   string  `json:"notes,omitempty"`
}

// Coordinates is a bare lat/lng pair, used by settings and the widgets.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WeatherData is the weather snapshot attached to an entry or served by the
// weather widget.
type WeatherData struct {
	Temp        float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    float64 `json:"humidity,omitempty"`
	WindSpeed   float64 `json:"windSpeed,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// Attachment is a file reference stored alongside an entry. Only metadata and
// a URL are kept; file bytes live elsewhere.
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// FormSubmission records the values captured by a smart form.
type FormSubmission struct {
	TemplateID  string         `json:"templateId"`
	Values      map[string]any `json:"values"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// Entry is one dated journal page.
//
// Date is a calendar day ("YYYY-MM-DD"), independent of CreatedAt: an entry
// may be written today about yesterday. IsFavorite is derived from the
// user's favorite set when the entry is loaded and is never stored on the row.
type Entry struct {
	ID          string           `json:"id"`
	UserID      string           `json:"-"`
	Title       string           `json:"title"`
	Content     []block.Block    `json:"content"`
	Mood        Mood             `json:"mood,omitempty"`
	Tags        []string         `json:"tags"`
	Date        string           `json:"date"`
	Location    *Location        `json:"location,omitempty"`
	Weather     *WeatherData     `json:"weather,omitempty"`
	Attachments []Attachment     `json:"attachments,omitempty"`
	TemplateID  string           `json:"templateId,omitempty"`
	SmartForms  []FormSubmission `json:"smartForms,omitempty"`
	IsFavorite  bool             `json:"isFavorite"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// HasTag reports whether name is among the entry's tags.
func (e *Entry) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t == name {
			return true
		}
	}
	return false
}
