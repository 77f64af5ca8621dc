package geocache

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
)

// placeDTO is the cached representation of a remote place.
type placeDTO struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Category string  `json:"category"`
}

func encodePlaces(places []place.Place) ([]byte, error) {
	dtos := make([]placeDTO, len(places))
	for i, p := range places {
		dtos[i] = placeDTO{
			Name:     p.Name(),
			Lat:      p.Point().Latitude,
			Lng:      p.Point().Longitude,
			Category: string(p.Category()),
		}
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("marshal places: %w", err)
	}
	return data, nil
}

func decodePlaces(data []byte) ([]place.Place, error) {
	var dtos []placeDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal places: %w", err)
	}
	out := make([]place.Place, 0, len(dtos))
	for _, d := range dtos {
		p, err := place.New(d.Name, geo.Point{Latitude: d.Lat, Longitude: d.Lng},
			place.ParseCategory(d.Category), place.Remote)
		if err != nil {
			return nil, fmt.Errorf("cached place: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}
