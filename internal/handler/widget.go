package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/auth"
	"github.com/sakif/yawmiyat/internal/calendar"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/place"
	"github.com/sakif/yawmiyat/internal/prayer"
	"github.com/sakif/yawmiyat/internal/service"
	"github.com/sakif/yawmiyat/internal/weather"
)

// WidgetHandler serves the dashboard widgets: weather, prayer times and the
// "today" card.
type WidgetHandler struct {
	weather *weather.Client
	journal *service.JournalService
	now     service.Clock
	logger  *slog.Logger
}

func NewWidgetHandler(w *weather.Client, journal *service.JournalService, now service.Clock, logger *slog.Logger) *WidgetHandler {
	if now == nil {
		now = time.Now
	}
	return &WidgetHandler{weather: w, journal: journal, now: now, logger: logger}
}

// coordinates reads lat and lng (or lon) from the query; missing values fall
// back to place.Default.
func coordinates(r *http.Request) (place.Coordinates, error) {
	c := place.Default
	q := r.URL.Query()

	if raw := q.Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil || lat < -90 || lat > 90 {
			return c, apperror.ValidationFailed("lat", "lat must be a number between -90 and 90")
		}
		c.Lat = lat
	}

	raw := q.Get("lng")
	if raw == "" {
		raw = q.Get("lon")
	}
	if raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil || lng < -180 || lng > 180 {
			return c, apperror.ValidationFailed("lng", "lng must be a number between -180 and 180")
		}
		c.Lng = lng
	}
	return c, nil
}

// HandleWeather never fails upstream: an Open-Meteo outage yields the
// fallback report.
//
// HTTP: GET /api/weather?lat=&lon=
func (h *WidgetHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	at, err := coordinates(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.weather.CurrentOrFallback(r.Context(), at))
}

type prayerResponse struct {
	Times       []prayer.Time     `json:"times"`
	Next        prayer.Time       `json:"next"`
	Location    string            `json:"location"`
	Date        time.Time         `json:"date"`
	Coordinates place.Coordinates `json:"coordinates"`
}

// HTTP: GET /api/prayer?lat=&lng=
func (h *WidgetHandler) HandlePrayer(w http.ResponseWriter, r *http.Request) {
	at, err := coordinates(r)
	if err != nil {
		writeError(w, err)
		return
	}
	now := h.now()
	times := prayer.Times(at.Lat, at.Lng, now)
	writeJSON(w, http.StatusOK, prayerResponse{
		Times:       times,
		Next:        prayer.Next(times, now),
		Location:    place.Name(at),
		Date:        now,
		Coordinates: at,
	})
}

type todayResponse struct {
	Gregorian string          `json:"gregorian"`
	Hijri     string          `json:"hijri"`
	HijriDate calendar.Hijri  `json:"hijriDate"`
	Time      string          `json:"time"`
	Quote     model.Quote     `json:"quote"`
	Weather   *weather.Report `json:"weather,omitempty"`
	Streak    *int            `json:"streak,omitempty"`
}

// HandleToday is the header card. Weather is included when the query has
// weather=true; the writing streak when the caller is logged in. Both are
// loaded concurrently.
//
// HTTP: GET /api/today?weather=true&lat=&lng=
func (h *WidgetHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := todayResponse{
		Gregorian: calendar.FormatArabic(now),
		Hijri:     calendar.FormatHijri(now),
		HijriDate: calendar.ToHijri(now),
		Time:      calendar.FormatTime(now),
		Quote:     model.QuoteOfTheDay(now),
	}

	g, ctx := errgroup.WithContext(r.Context())

	if r.URL.Query().Get("weather") == "true" {
		at, err := coordinates(r)
		if err != nil {
			writeError(w, err)
			return
		}
		g.Go(func() error {
			report := h.weather.CurrentOrFallback(ctx, at)
			resp.Weather = &report
			return nil
		})
	}

	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		g.Go(func() error {
			stats, err := h.journal.Stats(ctx, userID)
			if err != nil {
				return err
			}
			resp.Streak = &stats.Streak
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
