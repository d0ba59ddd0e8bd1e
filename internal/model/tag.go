package model

import "time"

// Tag is a reusable label. Entries reference tags by name.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTagColor is used for tags created implicitly from an entry.
const DefaultTagColor = "#8b5cf6"

// DefaultTags seeds the tag list of a new account.
var DefaultTags = []Tag{
	{Name: "عمل", Color: "#3b82f6"},
	{Name: "عائلة", Color: "#22c55e"},
	{Name: "صحة", Color: "#ef4444"},
	{Name: "دين", Color: "#8b5cf6"},
	{Name: "دراسة", Color: "#f59e0b"},
	{Name: "سفر", Color: "#06b6d4"},
	{Name: "رياضة", Color: "#10b981"},
	{Name: "قراءة", Color: "#ec4899"},
}
