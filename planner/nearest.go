package planner

import (
	"sort"

	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/utils"
)

// NearestStops returns the k stops closest to the given point, nearest first.
// Ties keep the input order (stable sort); fewer than k stops returns all.
func NearestStops(stops []gtfs.Stop, lat, lon float64, k int) []gtfs.Stop {
	if k <= 0 || len(stops) == 0 {
		return nil
	}
	out := make([]gtfs.Stop, len(stops))
	copy(out, stops)
	dist := make(map[string]float64, len(out))
	for _, s := range out {
		dist[s.ID] = utils.DistanceMeters(s.Lat, s.Lon, lat, lon)
	}
	sort.SliceStable(out, func(i, j int) bool { return dist[out[i].ID] < dist[out[j].ID] })
	if k < len(out) {
		out = out[:k]
	}
	return out
}
