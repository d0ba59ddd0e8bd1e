// Package export writes journal backups and reads them back.
//
// Two formats are produced: a versioned JSON document that round-trips
// losslessly through Import, and a plain-text rendering for reading or
// printing. Only JSON can be imported.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/model"
)

// Version is written into every JSON backup.
const Version = "1.0"

// Backup is the JSON backup document.
type Backup struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exportedAt"`
	Entries    []model.Entry `json:"entries"`
	Tags       []model.Tag   `json:"tags"`
}

// JSON encodes entries and tags as an indented backup document.
func JSON(entries []model.Entry, tags []model.Tag, now time.Time) ([]byte, error) {
	if entries == nil {
		entries = []model.Entry{}
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	out, err := json.MarshalIndent(Backup{
		Version:    Version,
		ExportedAt: now,
		Entries:    entries,
		Tags:       tags,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encoding backup: %w", err)
	}
	return out, nil
}

// Import decodes a JSON backup. The entries array is required; tags default
// to empty.
func Import(data []byte) (Backup, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Backup{}, apperror.ValidationFailed("data", "backup is not a JSON object")
	}
	raw, ok := top["entries"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return Backup{}, apperror.ValidationFailed("entries", "backup has no entries array")
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, apperror.ValidationFailed("data", fmt.Sprintf("invalid backup: %v", err))
	}
	if b.Tags == nil {
		b.Tags = []model.Tag{}
	}
	return b, nil
}

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("─", 50)
)

// Text renders entries as plain text, one section per entry in the given order.
func Text(entries []model.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(heavyRule + "\n")
		sb.WriteString("التاريخ: " + calendar.FormatDayArabic(e.Date) + "\n")

		title := e.Title
		if title == "" {
			title = "بدون عنوان"
		}
		sb.WriteString("العنوان: " + title + "\n")

		if e.Mood != "" {
			sb.WriteString("المزاج: " + e.Mood.Arabic() + "\n")
		}
		if len(e.Tags) > 0 {
			sb.WriteString("الوسوم: " + strings.Join(e.Tags, ", ") + "\n")
		}
		sb.WriteString(lightRule + "\n")

		for _, b := range e.Content {
			if b.Content == "" {
				continue
			}
			sb.WriteString(b.Content + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
