package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/yawmiyat/internal/block"
	"github.com/sakif/yawmiyat/internal/model"
)

var today = time.Date(2024, 3, 11, 15, 30, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format("2006-01-02")
}

func entry(id, date string) model.Entry {
	return model.Entry{ID: id, Date: date}
}

func textBlock(s string) block.Block {
	return block.Block{ID: block.NewID(), Content: s, Data: block.TextData{}}
}

func ids(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

// =========================================================================
// SEARCH AND FILTER TESTS
// =========================================================================

func TestMatches(t *testing.T) {
	e := model.Entry{
		Title:   "صباح الخير",
		Content: []block.Block{textBlock("زارني محمد اليوم"), {ID: "q", Content: "Deep Work", Data: block.QuoteData{}}},
		Tags:    []string{"عائلة"},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"صباح", true},
		{"محمد", true},
		{"deep work", true},
		{"عائ", true},
		{"", true},
		{"مساء", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(e, tt.query))
		})
	}
}

func TestApply(t *testing.T) {
	entries := []model.Entry{
		{ID: "a", Date: "2024-03-01", Mood: model.MoodHappy, IsFavorite: true, Tags: []string{"عمل"}},
		{ID: "b", Date: "2024-03-02"},
		{ID: "c", Date: "2024-02-28", Mood: model.MoodSad, Tags: []string{"عمل"}},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"a", "b", "c"}},
		{"favorites", Filter{FavoritesOnly: true}, []string{"a"}},
		{"has mood", Filter{HasMood: true}, []string{"a", "c"}},
		{"specific mood", Filter{Mood: model.MoodSad}, []string{"c"}},
		{"tag", Filter{Tag: "عمل"}, []string{"a", "c"}},
		{"month", Filter{Month: "2024-03"}, []string{"a", "b"}},
		{"combined", Filter{Month: "2024-03", Tag: "عمل"}, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(entries, tt.filter)))
		})
	}
}

// =========================================================================
// SORT TESTS
// =========================================================================

func TestSort_DateOrdersAreReverses(t *testing.T) {
	entries := []model.Entry{entry("b", "2024-03-02"), entry("c", "2024-03-03"), entry("a", "2024-03-01")}

	desc := append([]model.Entry(nil), entries...)
	Sort(desc, DateDesc)
	asc := append([]model.Entry(nil), entries...)
	Sort(asc, DateAsc)

	assert.Equal(t, []string{"c", "b", "a"}, ids(desc))
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))
}

func TestSort_Title(t *testing.T) {
	entries := []model.Entry{
		{ID: "ya", Title: "يوم"},
		{ID: "alif", Title: "أمس"},
		{ID: "ba", Title: "بيت"},
	}
	Sort(entries, ByTitle)
	assert.Equal(t, []string{"alif", "ba", "ya"}, ids(entries))
}

func TestSort_MoodPutsMissingLast(t *testing.T) {
	entries := []model.Entry{
		{ID: "1"},
		{ID: "2", Mood: model.MoodSad},
		{ID: "3"},
		{ID: "4", Mood: model.MoodHappy},
	}
	Sort(entries, ByMood)
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(entries))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, DateDesc, o)

	o, err = ParseOrder("title")
	require.NoError(t, err)
	assert.Equal(t, ByTitle, o)

	_, err = ParseOrder("random")
	assert.Error(t, err)
}

// =========================================================================
// STREAK AND STATS TESTS
// =========================================================================

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"three consecutive days", []string{day(0), day(-1), day(-2)}, 3},
		{"nothing today", []string{day(-1), day(-2)}, 0},
		{"gap yesterday", []string{day(0), day(-2)}, 1},
		{"several entries a day", []string{day(0), day(0), day(-1)}, 2},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []model.Entry
			for i, d := range tt.dates {
				entries = append(entries, entry(string(rune('a'+i)), d))
			}
			assert.Equal(t, tt.want, Streak(entries, today))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	entries := []model.Entry{
		entry("1", "2024-01-01"), entry("2", "2024-01-02"), entry("3", "2024-01-02"),
		entry("4", "2024-01-03"), entry("5", "2024-01-10"), entry("6", "2024-01-11"),
		entry("7", "garbage"),
	}
	assert.Equal(t, 3, LongestStreak(entries))
	assert.Equal(t, 0, LongestStreak(nil))
	assert.Equal(t, 1, LongestStreak([]model.Entry{entry("x", "2024-05-05")}))
}

func TestLongestStreak_AcrossMonthEnd(t *testing.T) {
	entries := []model.Entry{entry("1", "2024-02-28"), entry("2", "2024-02-29"), entry("3", "2024-03-01")}
	assert.Equal(t, 3, LongestStreak(entries))
}

func TestCompute(t *testing.T) {
	entries := []model.Entry{
		{
			ID: "1", Date: day(0), Mood: model.MoodHappy, Tags: []string{"عمل", "صحة"},
			Content: []block.Block{
				textBlock("أربع كلمات في  النص"),
				{ID: "c", Content: "not counted at all", Data: block.CodeData{Language: "go"}},
			},
		},
		{ID: "2", Date: day(-1), Tags: []string{"عمل"}, Content: []block.Block{textBlock("كلمة")}},
	}

	st := Compute(entries, today)
	assert.Equal(t, 2, st.TotalEntries)
	assert.Equal(t, 2, st.Streak)
	assert.Equal(t, 2, st.LongestStreak)
	assert.Len(t, st.MoodsCount, 8, "every mood has a key")
	assert.Equal(t, 1, st.MoodsCount[model.MoodHappy])
	assert.Equal(t, 0, st.MoodsCount[model.MoodAngry])
	assert.Equal(t, map[string]int{"عمل": 2, "صحة": 1}, st.TagsUsed)
	assert.Equal(t, 3, st.AverageWordsPerEntry, "(4+1)/2 rounds to 3")
}

func TestCompute_Empty(t *testing.T) {
	st := Compute(nil, today)
	assert.Equal(t, 0, st.TotalEntries)
	assert.Equal(t, 0, st.AverageWordsPerEntry)
	assert.NotNil(t, st.TagsUsed)
}

// =========================================================================
// MONTH TESTS
// =========================================================================

func TestMonth(t *testing.T) {
	entries := []model.Entry{
		{ID: "a", Date: "2024-02-29", Mood: model.MoodTired},
		{ID: "b", Date: "2024-02-29"},
		{ID: "c", Date: "2024-03-01"},
	}

	days, err := Month(entries, "2024-02")
	require.NoError(t, err)
	require.Len(t, days, 29)

	last := days[28]
	assert.Equal(t, "2024-02-29", last.Date)
	assert.Equal(t, "الخميس", last.Weekday)
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, []string{"a", "b"}, last.Entries)
	assert.Equal(t, []model.Mood{model.MoodTired}, last.Moods)
	assert.Equal(t, 0, days[0].Count)

	_, err = Month(entries, "2024/02")
	assert.Error(t, err)
}
