package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var riyadhDay = time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

func TestTimes_Riyadh(t *testing.T) {
	times := Times(24.7136, 46.6753, riyadhDay)
	require.Len(t, times, 5)

	want := []struct{ name, nameAR, clock string }{
		{"fajr", "الفجر", "04:42"},
		{"dhuhr", "الظهر", "11:53"},
		{"asr", "العصر", "15:17"},
		{"maghrib", "المغرب", "17:46"},
		{"isha", "العشاء", "19:01"},
	}
	for i, w := range want {
		assert.Equal(t, w.name, times[i].Name)
		assert.Equal(t, w.nameAR, times[i].NameAR)
		assert.Equal(t, w.clock, times[i].Clock, w.name)
	}

	_, offset := times[0].At.Zone()
	assert.Equal(t, 3*3600, offset, "Riyadh falls in UTC+3")
	assert.Equal(t, 11, times[0].At.Day())
}

func TestTimes_InOrder(t *testing.T) {
	for _, c := range []struct{ lat, lng float64 }{
		{21.42, 39.83}, {30.04, 31.24}, {51.5, -0.12}, {-33.87, 151.21},
	} {
		times := Times(c.lat, c.lng, riyadhDay)
		for i := 1; i < len(times); i++ {
			assert.True(t, times[i].At.After(times[i-1].At),
				"%v: %s should follow %s", c, times[i].Name, times[i-1].Name)
		}
	}
}

func TestNext(t *testing.T) {
	times := Times(24.7136, 46.6753, riyadhDay)
	loc := Zone(46.6753)

	next := Next(times, time.Date(2024, 3, 11, 12, 30, 0, 0, loc))
	assert.Equal(t, "asr", next.Name)

	next = Next(times, time.Date(2024, 3, 11, 3, 0, 0, 0, loc))
	assert.Equal(t, "fajr", next.Name)
	assert.Equal(t, 11, next.At.Day())

	next = Next(times, time.Date(2024, 3, 11, 21, 0, 0, 0, loc))
	assert.Equal(t, "fajr", next.Name)
	assert.Equal(t, 12, next.At.Day(), "after isha the next prayer is tomorrow's fajr")
}

func TestZone(t *testing.T) {
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, Zone(-74)).Zone()
	assert.Equal(t, -5*3600, offset)
}
