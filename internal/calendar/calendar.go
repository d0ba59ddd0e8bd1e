// Package calendar formats dates for an Arabic-speaking reader and converts
// Gregorian days to the tabular Hijri calendar.
package calendar

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used for entry dates.
const DayLayout = "2006-01-02"

var (
	DaysAR = [7]string{
		"الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت",
	}

	GregorianMonthsAR = [12]string{
		"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
		"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
	}

	HijriMonthsAR = [12]string{
		"محرم", "صفر", "ربيع الأول", "ربيع الثاني",
		"جمادى الأولى", "جمادى الآخرة", "رجب", "شعبان",
		"رمضان", "شوال", "ذو القعدة", "ذو الحجة",
	}
)

// Hijri is a date in the tabular Islamic calendar.
type Hijri struct {
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	MonthName string `json:"monthName"`
}

// ToHijri converts the calendar day of t. The time of day is ignored.
func ToHijri(t time.Time) Hijri {
	jd := julianDay(t.Year(), int(t.Month()), t.Day())

	l := jd - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := 30*n + j - 30

	return Hijri{
		Day:       day,
		Month:     month,
		Year:      year,
		MonthName: HijriMonthsAR[month-1],
	}
}

func julianDay(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// FormatArabic renders t as "<weekday>، <day> <month> <year>".
func FormatArabic(t time.Time) string {
	return fmt.Sprintf("%s، %d %s %d",
		DaysAR[t.Weekday()], t.Day(), GregorianMonthsAR[t.Month()-1], t.Year())
}

// FormatHijri renders t as "<day> <hijri month> <year> هـ".
func FormatHijri(t time.Time) string {
	h := ToHijri(t)
	return fmt.Sprintf("%d %s %d هـ", h.Day, h.MonthName, h.Year)
}

// FormatTime renders a 12-hour clock with the Arabic AM/PM marker.
func FormatTime(t time.Time) string {
	period := "ص"
	if t.Hour() >= 12 {
		period = "م"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), period)
}

// ParseDay parses a YYYY-MM-DD calendar day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: parsing day %q: %w", s, err)
	}
	return d, nil
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDayArabic formats a YYYY-MM-DD string with FormatArabic, falling back
// to the raw string when it does not parse.
func FormatDayArabic(s string) string {
	d, err := ParseDay(s, time.UTC)
	if err != nil {
		return s
	}
	return FormatArabic(d)
}
