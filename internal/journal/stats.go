package journal

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/model"
)

// Stats summarises a set of entries.
type Stats struct {
	TotalEntries         int                `json:"totalEntries"`
	Streak               int                `json:"streak"`
	LongestStreak        int                `json:"longestStreak"`
	MoodsCount           map[model.Mood]int `json:"moodsCount"`
	TagsUsed             map[string]int     `json:"tagsUsed"`
	AverageWordsPerEntry int                `json:"averageWordsPerEntry"`
}

// Streak counts consecutive calendar days, starting at today and walking
// backward, that have at least one entry. No entry today means 0.
func Streak(entries []model.Entry, today time.Time) int {
	days := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		days[e.Date] = struct{}{}
	}
	d := calendar.Day(today)
	n := 0
	for {
		if _, ok := days[d.Format(calendar.DayLayout)]; !ok {
			return n
		}
		n++
		d = d.AddDate(0, 0, -1)
	}
}

// LongestStreak is the longest run of consecutive days with entries anywhere
// in history. Several entries on one day count once; unparseable dates are
// ignored.
func LongestStreak(entries []model.Entry) int {
	seen := make(map[string]struct{}, len(entries))
	var days []time.Time
	for _, e := range entries {
		if _, dup := seen[e.Date]; dup {
			continue
		}
		seen[e.Date] = struct{}{}
		d, err := calendar.ParseDay(e.Date, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// WordCount counts whitespace-separated words in the entry's text blocks.
func WordCount(e model.Entry) int {
	n := 0
	for _, b := range e.Content {
		if b.Variant() == block.VariantText {
			n += len(strings.Fields(b.Content))
		}
	}
	return n
}

// Compute builds Stats for entries as of today.
func Compute(entries []model.Entry, today time.Time) Stats {
	st := Stats{
		TotalEntries:  len(entries),
		Streak:        Streak(entries, today),
		LongestStreak: LongestStreak(entries),
		MoodsCount:    make(map[model.Mood]int, len(model.Moods)),
		TagsUsed:      make(map[string]int),
	}
	for _, m := range model.Moods {
		st.MoodsCount[m] = 0
	}

	words := 0
	for _, e := range entries {
		if e.Mood.Valid() {
			st.MoodsCount[e.Mood]++
		}
		for _, t := range e.Tags {
			st.TagsUsed[t]++
		}
		words += WordCount(e)
	}
	if len(entries) > 0 {
		st.AverageWordsPerEntry = int(math.Round(float64(words) / float64(len(entries))))
	}
	return st
}
