package journal

import (
	"fmt"
	"time"

	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/model"
)

// DaySummary is one cell of the month calendar.
type DaySummary struct {
	Date    string       `json:"date"`
	Weekday string       `json:"weekday"`
	Hijri   string       `json:"hijri"`
	Count   int          `json:"count"`
	Moods   []model.Mood `json:"moods,omitempty"`
	Entries []string     `json:"entries,omitempty"`
}

// Month lays out every day of month ("YYYY-MM") with the entries written on it.
func Month(entries []model.Entry, month string) ([]DaySummary, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("journal: parsing month %q: %w", month, err)
	}

	byDay := make(map[string][]model.Entry)
	for _, e := range entries {
		byDay[e.Date] = append(byDay[e.Date], e)
	}

	var days []DaySummary
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format(calendar.DayLayout)
		s := DaySummary{
			Date:    key,
			Weekday: calendar.DaysAR[d.Weekday()],
			Hijri:   calendar.FormatHijri(d),
		}
		for _, e := range byDay[key] {
			s.Count++
			s.Entries = append(s.Entries, e.ID)
			if e.Mood != "" {
				s.Moods = append(s.Moods, e.Mood)
			}
		}
		days = append(days, s)
	}
	return days, nil
}
