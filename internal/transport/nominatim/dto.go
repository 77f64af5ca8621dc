package nominatim

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
)

// apiPlace mirrors one element of the jsonv2 search response.
// Coordinates arrive as strings.
type apiPlace struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func (a apiPlace) toPlace() (place.Place, bool) {
	lat, err := strconv.ParseFloat(a.Lat, 64)
	if err != nil {
		return place.Place{}, false
	}
	lng, err := strconv.ParseFloat(a.Lon, 64)
	if err != nil {
		return place.Place{}, false
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		// display_name is "Name, District, State, Country"
		name, _, _ = strings.Cut(a.DisplayName, ",")
		name = strings.TrimSpace(name)
	}

	p, err := place.New(name, geo.Point{Latitude: lat, Longitude: lng}, categoryFor(a.Category, a.Type), place.Remote)
	if err != nil {
		return place.Place{}, false
	}
	return p, true
}

// categoryFor maps an OSM class/type pair onto the local category set.
func categoryFor(class, typ string) place.Category {
	switch typ {
	case "city", "town", "administrative":
		return place.City
	case "village", "hamlet", "suburb", "neighbourhood":
		return place.Village
	case "place_of_worship", "temple", "shrine":
		return place.Temple
	case "aerodrome", "airport":
		return place.Airport
	case "station", "halt":
		if class == "railway" || class == "public_transport" {
			return place.Railway
		}
	case "university", "college", "school":
		return place.Education
	case "restaurant", "fast_food", "cafe", "food_court", "marketplace":
		return place.Food
	case "peak", "hill", "ridge":
		return place.HillStation
	case "waterfall", "water", "lake", "river", "beach", "cave_entrance":
		return place.Natural
	case "national_park", "nature_reserve", "protected_area":
		return place.Wildlife
	case "monument", "memorial", "fort", "castle", "ruins", "archaeological_site":
		return place.Heritage
	}

	switch class {
	case "historic":
		return place.Heritage
	case "natural", "waterway":
		return place.Natural
	case "railway":
		return place.Railway
	case "aeroway":
		return place.Airport
	}
	return place.General
}
