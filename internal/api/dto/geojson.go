package dto

import (
	"maintenance-route-service/internal/ports"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NewRouteFeatureCollection renders a route for map display: the depot,
// one numbered point per stop, suggested stops, and a closed
// depot -> stops -> depot line.
func NewRouteFeatureCollection(r *ports.MaintenanceRoute) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	depot := orb.Point{r.Plan.Depot.Lon, r.Plan.Depot.Lat}

	line := make(orb.LineString, 0, len(r.Plan.Stops)+2)
	line = append(line, depot)
	for _, s := range r.Plan.Stops {
		line = append(line, orb.Point{s.Point.Coordinates.Lon, s.Point.Coordinates.Lat})
	}
	line = append(line, depot)

	path := geojson.NewFeature(line)
	path.Properties["kind"] = "route"
	path.Properties["route_id"] = r.RouteID
	path.Properties["total_km"] = r.Plan.TotalKm
	path.Properties["stops"] = len(r.Plan.Stops)
	fc.Append(path)

	home := geojson.NewFeature(depot)
	home.Properties["kind"] = "depot"
	home.Properties["name"] = r.Plan.DepotName
	fc.Append(home)

	for _, s := range r.Plan.Stops {
		f := geojson.NewFeature(orb.Point{s.Point.Coordinates.Lon, s.Point.Coordinates.Lat})
		f.ID = s.Point.ID
		f.Properties["kind"] = "stop"
		f.Properties["sequence"] = s.Sequence
		f.Properties["name"] = s.Point.Meta.DeviceName
		f.Properties["leg_km"] = s.LegKm
		f.Properties["cumulative_km"] = s.CumulativeKm
		fc.Append(f)
	}

	for _, d := range r.Suggestions {
		c := d.VisitPoint().Coordinates
		if !c.Valid() {
			continue
		}
		f := geojson.NewFeature(orb.Point{c.Lon, c.Lat})
		f.ID = d.DeviceID
		f.Properties["kind"] = "suggestion"
		f.Properties["name"] = d.DeviceName
		fc.Append(f)
	}

	return fc
}
