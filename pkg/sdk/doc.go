// Package yatra is an in-process Go client for the yatra place search and
// route planning engine for Ujjain and Madhya Pradesh.
//
// A zero-option client ranks the compiled-in catalog, answers nearby and
// distance queries and plans straight-line route estimates:
//
//	client, _ := yatra.New(ctx)
//	places, _ := client.Search().Query("mahakal").Limit(5).Do(ctx)
//	km, _ := client.Distance(yatra.Point{Lat: 23.1765, Lng: 75.7885}, yatra.Point{Lat: 23.1828, Lng: 75.7681})
//
// Remote geocoding, a shared cache and OSRM road routing are opt-in:
//
//	client, _ := yatra.New(ctx,
//	    yatra.WithValkey("localhost:6379", ""),
//	    yatra.WithNominatim(yatra.NominatimConfig{UserAgent: "my-app/1.0"}),
//	    yatra.WithGeocoderQuota(1000, 20000, true),
//	    yatra.WithOSRM("http://localhost:5000", "foot"),
//	)
//	route, _ := client.Route(ctx, from, to, yatra.ProfileSafest)
package yatra
