// Package place names a coordinate pair for the dashboard widgets.
//
// The lookup is a fixed table of one-degree boxes around the cities the
// journal's users mostly write from; anything outside them is "your location".
package place

import "github.com/sakif/yawmiyat/internal/model"

// Default is used when the client sends no coordinates (Riyadh).
var Default = Coordinates{Lat: 24.7136, Lng: 46.6753}

// Unknown is the name of a point outside every known box.
const Unknown = "موقعك الحالي"

type Coordinates = model.Coordinates

// box is [minLat, maxLat) x [minLng, maxLng).
type box struct {
	name           string
	minLat, maxLat float64
	minLng, maxLng float64
}

var boxes = []box{
	{"الرياض", 24, 25, 46, 47},
	{"جدة", 21, 22, 39, 40},
	{"المدينة المنورة", 24, 25, 38, 39},
	{"مكة المكرمة", 21, 22, 40, 41},
}

// Name returns the Arabic city name for c, or Unknown.
func Name(c Coordinates) string {
	for _, b := range boxes {
		if c.Lat >= b.minLat && c.Lat < b.maxLat && c.Lng >= b.minLng && c.Lng < b.maxLng {
			return b.name
		}
	}
	return Unknown
}
