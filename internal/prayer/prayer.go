// Package prayer estimates the five daily prayer times from a coordinate
// pair and a date.
//
// The model is deliberately simple: solar declination from the day of the
// year, solar noon from the longitude and a whole-hour zone (lng/15), Fajr
// at 18° and Isha at 17° below the horizon, Shafi'i Asr (shadow factor 1).
// Results are within a few minutes of published tables at Gulf latitudes.
package prayer

import (
	"fmt"
	"math"
	"time"
)

const (
	FajrAngle = 18.0
	IshaAngle = 17.0
	AsrFactor = 1.0
)

// Time is one prayer of the day.
type Time struct {
	Name   string    `json:"name"`
	NameAR string    `json:"nameAr"`
	Clock  string    `json:"time"` // HH:MM local to the estimated zone
	At     time.Time `json:"timestamp"`
}

// Zone returns the whole-hour zone the calculation assumes for lng.
func Zone(lng float64) *time.Location {
	hours := int(math.Round(lng / 15))
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), hours*3600)
}

// Times returns Fajr, Dhuhr, Asr, Maghrib and Isha for the calendar day of
// date at (lat, lng), in that order.
func Times(lat, lng float64, date time.Time) []Time {
	loc := Zone(lng)
	day := date.In(loc)
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	decl := -23.45 * math.Cos(rad(360.0/365.0*float64(day.YearDay()+10)))
	zone := math.Round(lng / 15)
	noon := 12 - (lng/15 - zone)

	fajr := hourAngle(lat, decl, -FajrAngle)
	isha := hourAngle(lat, decl, -IshaAngle)
	sunset := deg(math.Acos(clamp(-math.Tan(rad(lat))*math.Tan(rad(decl))))) / 15

	asrAltitude := deg(math.Atan(1 / (AsrFactor + math.Tan(rad(math.Abs(lat-decl))))))
	asr := hourAngle(lat, decl, asrAltitude)

	at := func(name, nameAR string, hours float64) Time {
		// Round to the minute first so 59.6 minutes never prints as ":60".
		minutes := int(math.Round(hours * 60))
		t := midnight.Add(time.Duration(minutes) * time.Minute)
		return Time{Name: name, NameAR: nameAR, Clock: t.Format("15:04"), At: t}
	}

	return []Time{
		at("fajr", "الفجر", noon-fajr),
		at("dhuhr", "الظهر", noon),
		at("asr", "العصر", noon+asr),
		at("maghrib", "المغرب", noon+sunset),
		at("isha", "العشاء", noon+isha),
	}
}

// Next returns the first prayer after now. After Isha it is the next day's
// Fajr, estimated as today's plus 24 hours.
func Next(times []Time, now time.Time) Time {
	for _, t := range times {
		if t.At.After(now) {
			return t
		}
	}
	next := times[0]
	next.At = next.At.Add(24 * time.Hour)
	return next
}

// hourAngle is the time, in hours from solar noon, at which the sun stands
// at altitude degrees.
func hourAngle(lat, decl, altitude float64) float64 {
	cos := (math.Sin(rad(altitude)) - math.Sin(rad(lat))*math.Sin(rad(decl))) /
		(math.Cos(rad(lat)) * math.Cos(rad(decl)))
	return deg(math.Acos(clamp(cos))) / 15
}

func clamp(v float64) float64 { return math.Max(-1, math.Min(1, v)) }

func rad(d float64) float64 { return d * math.Pi / 180 }

func deg(r float64) float64 { return r * 180 / math.Pi }
