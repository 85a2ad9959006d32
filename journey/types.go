package journey

import (
	"fmt"
	"time"
)

// Point is a named geographic location.
type Point struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// LegKind discriminates the three atomic journey segments.
type LegKind string

const (
	LegWalk LegKind = "walk"
	LegWait LegKind = "wait"
	LegRide LegKind = "ride"
)

// LineRef carries the public-facing identity of the line a ride leg uses.
type LineRef struct {
	RouteID   string `json:"route_id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name,omitempty"`
	Color     string `json:"color,omitempty"`
	Headsign  string `json:"headsign,omitempty"`
}

// Leg is one atomic segment of a journey. Legs chain in space and time:
// each leg ends where and no later than the next one starts.
type Leg struct {
	Kind        LegKind   `json:"kind"`
	From        Point     `json:"from"`
	To          Point     `json:"to"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DistanceM   float64   `json:"distance_m"`
	DurationMin int       `json:"duration_min"`
	Line        *LineRef  `json:"line,omitempty"`
	Instruction string    `json:"instruction,omitempty"`
}

// Journey is a full planned itinerary from origin to destination.
type Journey struct {
	Origin           Point     `json:"origin"`
	Destination      Point     `json:"destination"`
	Legs             []Leg     `json:"legs"`
	Departure        time.Time `json:"departure"`
	Arrival          time.Time `json:"arrival"`
	TotalDistanceM   float64   `json:"total_distance_m"`
	TotalDurationMin int       `json:"total_duration_min"`
	Transfers        int       `json:"transfers"`
}

// Finalize recomputes the journey's totals and endpoints from its legs.
func (j *Journey) Finalize() {
	j.TotalDistanceM = 0
	j.TotalDurationMin = 0
	rides := 0
	for _, l := range j.Legs {
		j.TotalDistanceM += l.DistanceM
		j.TotalDurationMin += l.DurationMin
		if l.Kind == LegRide {
			rides++
		}
	}
	if rides > 0 {
		j.Transfers = rides - 1
	}
	if len(j.Legs) > 0 {
		j.Departure = j.Legs[0].Start
		j.Arrival = j.Legs[len(j.Legs)-1].End
	}
}

// Validate checks the journey's structural invariants: non-empty, legs
// chained in space and time, and non-negative distances and durations.
func (j *Journey) Validate() error {
	if len(j.Legs) == 0 {
		return fmt.Errorf("journey has no legs")
	}
	for i, l := range j.Legs {
		if l.DistanceM < 0 {
			return fmt.Errorf("leg %d: negative distance", i)
		}
		if l.DurationMin < 0 {
			return fmt.Errorf("leg %d: negative duration", i)
		}
		if l.End.Before(l.Start) {
			return fmt.Errorf("leg %d: ends before it starts", i)
		}
		if l.Kind == LegRide && l.Line == nil {
			return fmt.Errorf("leg %d: ride leg without line", i)
		}
		if i == 0 {
			continue
		}
		prev := j.Legs[i-1]
		if prev.To.Lat != l.From.Lat || prev.To.Lon != l.From.Lon {
			return fmt.Errorf("leg %d: does not start where leg %d ends", i, i-1)
		}
		if l.Start.Before(prev.End) {
			return fmt.Errorf("leg %d: starts before leg %d ends", i, i-1)
		}
	}
	return nil
}
