package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/kailas-cloud/yatra/internal/catalog"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
	"github.com/kailas-cloud/yatra/internal/domain/search/result"
)

type pointOutput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type placeOutput struct {
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Category   string   `json:"category"`
	District   string   `json:"district,omitempty"`
	Score      *int     `json:"score,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

type placesResponse struct {
	Results []placeOutput `json:"results"`
	Total   int           `json:"total"`
}

type distanceOutput struct {
	From       pointOutput `json:"from"`
	To         pointOutput `json:"to"`
	DistanceKm float64     `json:"distance_km"`
	DistanceM  float64     `json:"distance_m"`
}

type planOutput struct {
	ID          string        `json:"id"`
	Strategy    string        `json:"strategy"`
	Profile     string        `json:"profile"`
	DistanceKm  float64       `json:"distance_km"`
	DurationSec int64         `json:"duration_sec"`
	Estimated   bool          `json:"estimated"`
	Geometry    []pointOutput `json:"geometry"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func pointToOutput(p geo.Point) pointOutput {
	return pointOutput{Lat: p.Latitude, Lng: p.Longitude}
}

func placeToOutput(p place.Place) placeOutput {
	return placeOutput{
		Name:     p.Name(),
		Lat:      p.Point().Latitude,
		Lng:      p.Point().Longitude,
		Category: string(p.Category()),
		District: catalog.District(p.Name()),
	}
}

func placesToOutput(places []place.Place) placesResponse {
	out := make([]placeOutput, len(places))
	for i, p := range places {
		out[i] = placeToOutput(p)
	}
	return placesResponse{Results: out, Total: len(out)}
}

func scoredToOutput(scored []result.Scored) placesResponse {
	out := make([]placeOutput, len(scored))
	for i := range scored {
		score := scored[i].Score()
		out[i] = placeToOutput(scored[i].Place())
		out[i].Score = &score
	}
	return placesResponse{Results: out, Total: len(out)}
}

func nearbyToOutput(nearby []result.Nearby) placesResponse {
	out := make([]placeOutput, len(nearby))
	for i := range nearby {
		d := nearby[i].DistanceKm()
		out[i] = placeToOutput(nearby[i].Place())
		out[i].DistanceKm = &d
	}
	return placesResponse{Results: out, Total: len(out)}
}

func planToOutput(p *domroute.Plan) planOutput {
	geometry := make([]pointOutput, len(p.Geometry))
	for i, g := range p.Geometry {
		geometry[i] = pointToOutput(g)
	}
	return planOutput{
		ID:          p.ID,
		Strategy:    p.Strategy,
		Profile:     string(p.Profile),
		DistanceKm:  p.DistanceKm,
		DurationSec: p.DurationSeconds(),
		Estimated:   p.Estimated,
		Geometry:    geometry,
	}
}

func writePlaces(w io.Writer, places []place.Place) error {
	if len(places) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tCATEGORY\tDISTRICT\tLAT\tLNG")
	for _, p := range places {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.4f\n",
			p.Name(), p.Category(), orDash(catalog.District(p.Name())), p.Point().Latitude, p.Point().Longitude)
	}
	return tw.Flush()
}

func writeScored(w io.Writer, scored []result.Scored) error {
	if len(scored) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SCORE\tNAME\tCATEGORY\tDISTRICT")
	for i := range scored {
		p := scored[i].Place()
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			scored[i].Score(), p.Name(), p.Category(), orDash(catalog.District(p.Name())))
	}
	return tw.Flush()
}

func writeNearby(w io.Writer, nearby []result.Nearby) error {
	if len(nearby) == 0 {
		_, err := fmt.Fprintln(w, "No places within radius.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DISTANCE\tNAME\tCATEGORY")
	for i := range nearby {
		p := nearby[i].Place()
		_, _ = fmt.Fprintf(tw, "%.2f km\t%s\t%s\n", nearby[i].DistanceKm(), p.Name(), p.Category())
	}
	return tw.Flush()
}

func writePlan(w io.Writer, p *domroute.Plan) error {
	kind := "road route"
	if p.Estimated {
		kind = "straight-line estimate"
	}
	_, err := fmt.Fprintf(w, "%.2f km, %s (%s via %s, profile %s)\n",
		p.DistanceKm, p.Duration.Round(time.Second), kind, p.Strategy, p.Profile)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
