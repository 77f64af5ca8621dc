// Package catalog holds the compiled-in table of Madhya Pradesh places.
// Changing it requires a rebuild.
package catalog

import (
	"strings"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
)

// DefaultDistrict is returned when no district table entry matches.
const DefaultDistrict = "Madhya Pradesh"

// DefaultBounds covers Madhya Pradesh with a small margin.
var DefaultBounds = geo.Bounds{North: 26.9, South: 21.0, East: 82.9, West: 74.0}

var places = []place.Place{
	// Cities
	place.MustLocal("Ujjain", 23.1765, 75.7885, place.City),
	place.MustLocal("Indore", 22.7196, 75.8577, place.City),
	place.MustLocal("Bhopal", 23.2599, 77.4126, place.City),
	place.MustLocal("Gwalior", 26.2183, 78.1828, place.City),
	place.MustLocal("Jabalpur", 23.1815, 79.9864, place.City),
	place.MustLocal("Dewas", 22.9676, 76.0534, place.City),
	place.MustLocal("Sagar", 23.8388, 78.7378, place.City),
	place.MustLocal("Rewa", 24.5362, 81.3037, place.City),

	// Temples
	place.MustLocal("Mahakaleshwar Temple", 23.1828, 75.7681, place.Temple),
	place.MustLocal("Kal Bhairav Temple", 23.2123, 75.7694, place.Temple),
	place.MustLocal("Harsiddhi Temple", 23.1819, 75.7664, place.Temple),
	place.MustLocal("Mangalnath Temple", 23.2006, 75.7747, place.Temple),
	place.MustLocal("Chintaman Ganesh Temple", 23.1612, 75.8013, place.Temple),
	place.MustLocal("Omkareshwar Temple", 22.2453, 76.1511, place.Temple),

	// Heritage
	place.MustLocal("Khajuraho Group of Monuments", 24.8318, 79.9199, place.Heritage),
	place.MustLocal("Sanchi Stupa", 23.4794, 77.7397, place.Heritage),
	place.MustLocal("Gwalior Fort", 26.2307, 78.1691, place.Heritage),
	place.MustLocal("Orchha Fort", 25.3519, 78.6406, place.Heritage),
	place.MustLocal("Mandu", 22.3668, 75.3954, place.Heritage),
	place.MustLocal("Bhimbetka Rock Shelters", 22.9386, 77.6128, place.Heritage),
	place.MustLocal("Rajwada Palace", 22.7188, 75.8547, place.Heritage),
	place.MustLocal("Sandipani Ashram", 23.1934, 75.7896, place.Heritage),

	// Hill stations
	place.MustLocal("Pachmarhi", 22.4674, 78.4346, place.HillStation),
	place.MustLocal("Amarkantak", 22.6735, 81.7545, place.HillStation),

	// Wildlife
	place.MustLocal("Kanha National Park", 22.3345, 80.6115, place.Wildlife),
	place.MustLocal("Bandhavgarh National Park", 23.7222, 81.0240, place.Wildlife),
	place.MustLocal("Pench National Park", 21.7436, 79.2961, place.Wildlife),
	place.MustLocal("Panna National Park", 24.7206, 80.0123, place.Wildlife),
	place.MustLocal("Satpura National Park", 22.5380, 78.1552, place.Wildlife),

	// Natural
	place.MustLocal("Ram Ghat", 23.1832, 75.7642, place.Natural),
	place.MustLocal("Dhuandhar Falls", 23.1307, 79.8027, place.Natural),
	place.MustLocal("Upper Lake Bhopal", 23.2513, 77.3396, place.Natural),

	// Airports
	place.MustLocal("Devi Ahilya Bai Holkar Airport", 22.7218, 75.8011, place.Airport),
	place.MustLocal("Raja Bhoj Airport", 23.2875, 77.3374, place.Airport),
	place.MustLocal("Gwalior Airport", 26.2933, 78.2278, place.Airport),
	place.MustLocal("Jabalpur Dumna Airport", 23.1778, 80.0520, place.Airport),

	// Railway
	place.MustLocal("Ujjain Junction", 23.1797, 75.7829, place.Railway),
	place.MustLocal("Indore Junction", 22.7178, 75.8680, place.Railway),
	place.MustLocal("Bhopal Junction", 23.2665, 77.4131, place.Railway),
	place.MustLocal("Itarsi Junction", 22.6142, 77.7626, place.Railway),

	// Education
	place.MustLocal("Vikram University", 23.1606, 75.7937, place.Education),
	place.MustLocal("IIT Indore", 22.5204, 75.9207, place.Education),

	// Villages
	place.MustLocal("Pranpur Village", 24.7522, 78.1211, place.Village),
	place.MustLocal("Ladpura Khas", 25.3340, 78.6698, place.Village),

	// Food
	place.MustLocal("Sarafa Bazaar", 22.7185, 75.8550, place.Food),
	place.MustLocal("Chappan Dukan", 22.7244, 75.8839, place.Food),

	// General
	place.MustLocal("Freeganj Tower Chowk", 23.1766, 75.7842, place.General),
}

// districts maps a lowercase name substring to a district. First match wins.
var districts = []struct {
	substr   string
	district string
}{
	{"ujjain", "Ujjain"},
	{"mahakal", "Ujjain"},
	{"kal bhairav", "Ujjain"},
	{"harsiddhi", "Ujjain"},
	{"mangalnath", "Ujjain"},
	{"chintaman", "Ujjain"},
	{"sandipani", "Ujjain"},
	{"ram ghat", "Ujjain"},
	{"vikram", "Ujjain"},
	{"freeganj", "Ujjain"},
	{"indore", "Indore"},
	{"rajwada", "Indore"},
	{"sarafa", "Indore"},
	{"chappan", "Indore"},
	{"ahilya", "Indore"},
	{"bhopal", "Bhopal"},
	{"raja bhoj", "Bhopal"},
	{"sanchi", "Raisen"},
	{"bhimbetka", "Raisen"},
	{"gwalior", "Gwalior"},
	{"jabalpur", "Jabalpur"},
	{"dhuandhar", "Jabalpur"},
	{"khajuraho", "Chhatarpur"},
	{"orchha", "Niwari"},
	{"ladpura", "Niwari"},
	{"pachmarhi", "Narmadapuram"},
	{"satpura", "Narmadapuram"},
	{"itarsi", "Narmadapuram"},
	{"omkareshwar", "Khandwa"},
	{"mandu", "Dhar"},
	{"kanha", "Mandla"},
	{"bandhavgarh", "Umaria"},
	{"pench", "Seoni"},
	{"amarkantak", "Anuppur"},
	{"panna", "Panna"},
	{"pranpur", "Ashoknagar"},
	{"dewas", "Dewas"},
	{"sagar", "Sagar"},
	{"rewa", "Rewa"},
}

// Places returns a copy of the catalog in its canonical order.
func Places() []place.Place {
	out := make([]place.Place, len(places))
	copy(out, places)
	return out
}

// Len returns the number of catalog entries.
func Len() int { return len(places) }

// District returns the district for a place name, or DefaultDistrict.
func District(name string) string {
	lower := strings.ToLower(name)
	for _, d := range districts {
		if strings.Contains(lower, d.substr) {
			return d.district
		}
	}
	return DefaultDistrict
}

// Lookup returns the catalog place with the given name, case-insensitively.
func Lookup(name string) (place.Place, bool) {
	for _, p := range places {
		if strings.EqualFold(p.Name(), name) {
			return p, true
		}
	}
	return place.Place{}, false
}
