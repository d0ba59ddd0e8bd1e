package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHijri(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Hijri
	}{
		{"first of ramadan 1445", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), Hijri{1, 9, 1445, "رمضان"}},
		{"islamic new year 1445", time.Date(2023, 7, 19, 0, 0, 0, 0, time.UTC), Hijri{1, 1, 1445, "محرم"}},
		{"end of dhu al-hijjah 1446", time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC), Hijri{29, 12, 1446, "ذو الحجة"}},
		{"y2k", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), Hijri{24, 9, 1420, "رمضان"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHijri(tt.date))
		})
	}
}

func TestToHijri_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 12, 1, 0, 0, 0, time.UTC)
	night := time.Date(2024, 3, 12, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, ToHijri(morning), ToHijri(night))
}

func TestFormatArabic(t *testing.T) {
	d := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "الإثنين، 11 مارس 2024", FormatArabic(d))
}

func TestFormatHijri(t *testing.T) {
	d := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 رمضان 1445 هـ", FormatHijri(d))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 ص"},
		{9, 30, "9:30 ص"},
		{12, 0, "12:00 م"},
		{23, 59, "11:59 م"},
	}
	for _, tt := range tests {
		got := FormatTime(time.Date(2024, 1, 1, tt.hour, tt.minute, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got)
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-05-01", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("01/05/2024", nil)
	assert.Error(t, err)
}

func TestFormatDayArabic_FallsBackToInput(t *testing.T) {
	assert.Equal(t, "not-a-date", FormatDayArabic("not-a-date"))
	assert.Equal(t, "الإثنين، 11 مارس 2024", FormatDayArabic("2024-03-11"))
}
