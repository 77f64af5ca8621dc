package place

// Category is the place classification used for importance weighting.
type Category string

// Category constants.
const (
	City        Category = "city"
	Temple      Category = "temple"
	Heritage    Category = "heritage"
	HillStation Category = "hill_station"
	Wildlife    Category = "wildlife"
	Natural     Category = "natural"
	Education   Category = "education"
	Airport     Category = "airport"
	Railway     Category = "railway"
	Village     Category = "village"
	Food        Category = "food"
	General     Category = "general"
)

var importance = map[Category]float64{
	City:        1.0,
	Temple:      0.9,
	Heritage:    0.85,
	HillStation: 0.8,
	Wildlife:    0.75,
	Natural:     0.7,
	Airport:     0.65,
	Railway:     0.6,
	Education:   0.55,
	Village:     0.4,
	Food:        0.35,
	General:     0.2,
}

// Importance returns the fixed weight for c in [0,1]. Unknown categories weigh as General.
func (c Category) Importance() float64 {
	if w, ok := importance[c]; ok {
		return w
	}
	return importance[General]
}

// IsValid checks if the category is one of the known values.
func (c Category) IsValid() bool {
	_, ok := importance[c]
	return ok
}

// IsTransportHub reports whether c is an arrival point: a railway station or an airport.
func (c Category) IsTransportHub() bool {
	return c == Railway || c == Airport
}

// ParseCategory maps s to a Category, falling back to General.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.IsValid() {
		return c
	}
	return General
}

// Provenance records where a place came from.
type Provenance string

// Provenance constants.
const (
	Local  Provenance = "local"
	Remote Provenance = "remote"
)
