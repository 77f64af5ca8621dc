package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
	"github.com/kailas-cloud/yatra/internal/domain/search/mode"
	"github.com/kailas-cloud/yatra/internal/domain/search/request"
	"github.com/kailas-cloud/yatra/internal/transport/osrm"
	routeuc "github.com/kailas-cloud/yatra/internal/usecase/route"
)

func newSearchCmd(g *globalOptions) *cobra.Command {
	var (
		limit   int
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank catalog places against a query",
		Long: `Rank catalog places by name, category and district relevance.
An empty query lists the most important places.

Examples:
  yatractl search "kal bhairav"
  yatractl search --explain -n 3 ujjain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			req, err := request.New(query, limit, mode.Local)
			if err != nil {
				return err
			}
			svc := newSearchService()
			out := cmd.OutOrStdout()

			if explain {
				scored := svc.Explain(req.Query(), req.Limit())
				if g.json {
					return writeJSON(out, scoredToOutput(scored))
				}
				return writeScored(out, scored)
			}

			places, err := svc.Search(cmd.Context(), &req)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(out, placesToOutput(places))
			}
			return writePlaces(out, places)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", request.DefaultLimit, "maximum number of results")
	cmd.Flags().BoolVar(&explain, "explain", false, "show relevance scores")
	return cmd
}

func newPopularCmd(g *globalOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List the most important catalog places",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			places := newSearchService().Popular(limit)
			if g.json {
				return writeJSON(cmd.OutOrStdout(), placesToOutput(places))
			}
			return writePlaces(cmd.OutOrStdout(), places)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", request.DefaultLimit, "maximum number of results")
	return cmd
}

func newNearbyCmd(g *globalOptions) *cobra.Command {
	var (
		limit  int
		radius float64
	)
	cmd := &cobra.Command{
		Use:   "nearby <lat> <lng>",
		Short: "List catalog places around a point, nearest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			center, err := parsePoint(args[0], args[1])
			if err != nil {
				return err
			}
			nearby, err := newSearchService().Nearby(center, radius, limit)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), nearbyToOutput(nearby))
			}
			return writeNearby(cmd.OutOrStdout(), nearby)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", request.DefaultLimit, "maximum number of results")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 5, "search radius in kilometers")
	return cmd
}

func newHubsCmd(g *globalOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "hubs [lat lng]",
		Short: "List railway stations and airports, nearest first when a point is given",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newSearchService()
			switch len(args) {
			case 0:
				hubs := svc.Hubs(limit)
				if g.json {
					return writeJSON(cmd.OutOrStdout(), placesToOutput(hubs))
				}
				return writePlaces(cmd.OutOrStdout(), hubs)
			case 2:
				center, err := parsePoint(args[0], args[1])
				if err != nil {
					return err
				}
				nearest, err := svc.NearestHubs(center, limit)
				if err != nil {
					return err
				}
				if g.json {
					return writeJSON(cmd.OutOrStdout(), nearbyToOutput(nearest))
				}
				return writeNearby(cmd.OutOrStdout(), nearest)
			default:
				return fmt.Errorf("hubs takes no arguments or <lat> <lng>, got %d", len(args))
			}
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", request.DefaultLimit, "maximum number of results")
	return cmd
}

func newDistanceCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "distance <from_lat> <from_lng> <to_lat> <to_lng>",
		Short: "Great-circle distance between two points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseEndpoints(args)
			if err != nil {
				return err
			}
			km, err := newSearchService().Distance(from, to)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), distanceOutput{
					From: pointToOutput(from), To: pointToOutput(to), DistanceKm: km, DistanceM: km * 1000,
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.3f km\n", km)
			return err
		},
	}
}

func newRouteCmd(g *globalOptions) *cobra.Command {
	var (
		profile     string
		osrmURL     string
		osrmProfile string
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "route <from_lat> <from_lng> <to_lat> <to_lng>",
		Short: "Plan a route between two points",
		Long: `Plan a route. Without --osrm the straight-line estimate is used.
With --osrm the OSRM server is tried first and the estimate is the fallback.

Examples:
  yatractl route 23.1765 75.7885 23.1828 75.7681
  yatractl route --profile fastest --osrm http://localhost:5000 23.17 75.78 23.18 75.76`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseEndpoints(args)
			if err != nil {
				return err
			}
			req, err := domroute.NewRequest(from, to, domroute.Profile(profile))
			if err != nil {
				return err
			}

			var strategies []routeuc.Strategy
			if osrmURL != "" {
				strategies = append(strategies, osrm.NewStrategy(osrm.Config{
					BaseURL: osrmURL,
					Profile: osrmProfile,
					Timeout: timeout,
				}))
			}
			strategies = append(strategies, routeuc.NewEstimate())

			plan, err := routeuc.NewPlanner(g.logger(), strategies...).Plan(cmd.Context(), req)
			if err != nil {
				return err
			}
			if g.json {
				return writeJSON(cmd.OutOrStdout(), planToOutput(&plan))
			}
			return writePlan(cmd.OutOrStdout(), &plan)
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", string(domroute.Optimal), "routing profile: optimal, fastest or safest")
	cmd.Flags().StringVar(&osrmURL, "osrm", "", "OSRM base URL to try before the estimate")
	cmd.Flags().StringVar(&osrmProfile, "osrm-profile", osrm.DefaultProfile, "OSRM profile segment")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "OSRM request timeout")
	return cmd
}

func parseEndpoints(args []string) (from, to geo.Point, err error) {
	if from, err = parsePoint(args[0], args[1]); err != nil {
		return from, to, err
	}
	to, err = parsePoint(args[2], args[3])
	return from, to, err
}

func parsePoint(lat, lng string) (geo.Point, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude %q: %w", lng, err)
	}
	return geo.Point{Latitude: la, Longitude: lo}, nil
}
