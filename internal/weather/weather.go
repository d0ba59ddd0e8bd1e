// Package weather reads current conditions from the Open-Meteo forecast API
// (free, no key) and describes them in Arabic.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/place"
)

// DefaultBaseURL is the public Open-Meteo endpoint.
const DefaultBaseURL = "https://api.open-meteo.com"

// Report is what the weather widget shows.
type Report struct {
	Weather  model.WeatherData `json:"weather"`
	Location string            `json:"location"`
}

// Fallback is served whenever the upstream call fails.
func Fallback() Report {
	return Report{
		Weather: model.WeatherData{
			Temp:        28,
			Description: "مشمس",
			Icon:        "01d",
			Humidity:    45,
			WindSpeed:   12,
		},
		Location: "الرياض",
	}
}

// Describe maps a WMO weather code to an Arabic description and an
// OpenWeather-style icon id.
func Describe(code int) (string, string) {
	switch {
	case code == 0:
		return "مشمس", "01d"
	case code >= 1 && code <= 3:
		return "غائم جزئياً", "02d"
	case code >= 45 && code <= 48:
		return "ضبابي", "50d"
	case code >= 51 && code <= 67:
		return "ممطر", "10d"
	case code >= 71 && code <= 86:
		return "مثلج", "13d"
	case code >= 95:
		return "عاصفة", "11d"
	}
	return "مشمس", "01d"
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a client for baseURL; "" means DefaultBaseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type forecast struct {
	Current *struct {
		Temperature float64  `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode int      `json:"weather_code"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Current fetches the conditions at c.
func (c *Client) Current(ctx context.Context, at place.Coordinates) (Report, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("weather: building request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather: calling Open-Meteo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather: Open-Meteo returned %s", resp.Status)
	}

	var f forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return Report{}, fmt.Errorf("weather: decoding forecast: %w", err)
	}
	if f.Current == nil {
		return Report{}, fmt.Errorf("weather: forecast has no current conditions")
	}

	desc, icon := Describe(f.Current.WeatherCode)
	data := model.WeatherData{
		Temp:        math.Round(f.Current.Temperature),
		Description: desc,
		Icon:        icon,
	}
	if f.Current.Humidity != nil {
		data.Humidity = *f.Current.Humidity
	}
	if f.Current.WindSpeed != nil {
		data.WindSpeed = *f.Current.WindSpeed
	}

	name := place.Name(at)
	data.Location = name
	return Report{Weather: data, Location: name}, nil
}

// CurrentOrFallback is Current with the fallback report on any failure. The
// failure is logged, not returned; the widget always has something to show.
func (c *Client) CurrentOrFallback(ctx context.Context, at place.Coordinates) Report {
	r, err := c.Current(ctx, at)
	if err != nil {
		c.logger.Warn("weather unavailable, serving fallback", slog.String("error", err.Error()))
		return Fallback()
	}
	return r
}
