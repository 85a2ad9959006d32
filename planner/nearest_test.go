package planner

import (
	"testing"

	"github.com/ourenbus/journey-planner/gtfs"
)

func TestNearestStops(t *testing.T) {
	stops := []gtfs.Stop{
		{ID: "far", Lat: 42.40, Lon: -7.8640},
		{ID: "near", Lat: 42.3436, Lon: -7.8640},
		{ID: "mid", Lat: 42.36, Lon: -7.8640},
	}
	lat, lon := 42.3400, -7.8640

	t.Run("ordered by ascending distance", func(t *testing.T) {
		got := NearestStops(stops, lat, lon, 3)
		want := []string{"near", "mid", "far"}
		for i, s := range got {
			if s.ID != want[i] {
				t.Fatalf("NearestStops order = %v, want %v", ids(got), want)
			}
		}
	})

	t.Run("returns min(k, n) results", func(t *testing.T) {
		if got := NearestStops(stops, lat, lon, 2); len(got) != 2 {
			t.Errorf("k=2 returned %d stops", len(got))
		}
		if got := NearestStops(stops, lat, lon, 10); len(got) != 3 {
			t.Errorf("k=10 returned %d stops", len(got))
		}
		if got := NearestStops(stops, lat, lon, 0); got != nil {
			t.Errorf("k=0 returned %v", got)
		}
		if got := NearestStops(nil, lat, lon, 5); got != nil {
			t.Errorf("no stops returned %v", got)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		tied := []gtfs.Stop{
			{ID: "b", Lat: 42.35, Lon: -7.8640},
			{ID: "a", Lat: 42.35, Lon: -7.8640},
		}
		got := NearestStops(tied, lat, lon, 2)
		if got[0].ID != "b" || got[1].ID != "a" {
			t.Errorf("tie order = %v, want [b a]", ids(got))
		}
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		NearestStops(stops, lat, lon, 3)
		if stops[0].ID != "far" {
			t.Errorf("input slice mutated: %v", ids(stops))
		}
	})
}

func ids(stops []gtfs.Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.ID
	}
	return out
}
