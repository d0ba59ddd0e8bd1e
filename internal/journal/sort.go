package journal

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sakif/yawmiyat/internal/model"
)

// Order is a list ordering.
type Order string

const (
	DateDesc Order = "date-desc"
	DateAsc  Order = "date-asc"
	ByTitle  Order = "title"
	ByMood   Order = "mood"
)

// ParseOrder maps a query value to an Order; "" is DateDesc.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case "":
		return DateDesc, nil
	case DateDesc, DateAsc, ByTitle, ByMood:
		return o, nil
	}
	return "", fmt.Errorf("journal: unknown sort order %q", s)
}

// Sort orders entries in place. Every order is stable, so entries that
// compare equal keep their relative position.
func Sort(entries []model.Entry, order Order) {
	switch order {
	case DateAsc:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	case ByTitle:
		c := collate.New(language.Arabic)
		sort.SliceStable(entries, func(i, j int) bool {
			return c.CompareString(entries[i].Title, entries[j].Title) < 0
		})
	case ByMood:
		// Entries with a mood come first; the mood values themselves are not ordered.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Mood != "" && entries[j].Mood == ""
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	}
}
