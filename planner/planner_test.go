package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/journey"
)

// Test geography: stops on a line of constant longitude so distances are
// predictable. 0.0036 degrees of latitude is roughly 400 m, a 5 minute walk.
const (
	testLon   = -7.8640
	originLat = 42.3400
	stopALat  = 42.3436
	stopM1Lat = 42.3500
	stopM2Lat = 42.3600
	stopBLat  = 42.3700
	destLat   = 42.3736
)

// monday is inside the WKD calendar range.
var monday = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

var (
	testOrigin      = journey.Point{Name: "origin", Lat: originLat, Lon: testLon}
	testDestination = journey.Point{Name: "destination", Lat: destLat, Lon: testLon}
)

func sec(h, m, s int) int { return h*3600 + m*60 + s }

func weekdayCalendar(serviceID string) gtfs.Calendar {
	return gtfs.Calendar{
		ServiceID: serviceID,
		Monday:    true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		StartDate: 20260101,
		EndDate:   20261231,
	}
}

func baseFixture() *gtfs.Index {
	g := gtfs.NewIndex()
	g.AddStop(gtfs.Stop{ID: "A", Name: "Praza Maior", Lat: stopALat, Lon: testLon})
	g.AddStop(gtfs.Stop{ID: "M1", Name: "Xardins", Lat: stopM1Lat, Lon: testLon})
	g.AddStop(gtfs.Stop{ID: "M2", Name: "Ponte", Lat: stopM2Lat, Lon: testLon})
	g.AddStop(gtfs.Stop{ID: "B", Name: "Campus", Lat: stopBLat, Lon: testLon})
	g.AddRoute(gtfs.Route{ID: "R1", ShortName: "1", LongName: "Centro - Campus", Color: "FF0000"})
	g.AddRoute(gtfs.Route{ID: "R2", ShortName: "2", LongName: "Circular"})
	g.AddRoute(gtfs.Route{ID: "R3", ShortName: "3", LongName: "Ponte - Campus"})
	g.AddCalendar(weekdayCalendar("WKD"))
	return g
}

// directFixture has one trip covering origin stop A to destination stop B:
// departs A at 08:08 (3 min past the earliest reachable instant), arrives B
// at 08:20.
func directFixture() *gtfs.Index {
	g := baseFixture()
	g.AddTrip(gtfs.Trip{ID: "T1", RouteID: "R1", ServiceID: "WKD", Headsign: "Campus"})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "A", ArrivalSec: sec(8, 8, 0), DepartureSec: sec(8, 8, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "B", ArrivalSec: sec(8, 20, 0), DepartureSec: sec(8, 20, 0), Seq: 2})
	return g
}

// transferFixture requires one change: T1 covers A -> M1, T2 covers M1 -> B
// with a 5 minute connection.
func transferFixture() *gtfs.Index {
	g := baseFixture()
	g.AddTrip(gtfs.Trip{ID: "T1", RouteID: "R1", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "A", ArrivalSec: sec(8, 8, 0), DepartureSec: sec(8, 8, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "M1", ArrivalSec: sec(8, 15, 0), DepartureSec: sec(8, 15, 0), Seq: 2})
	g.AddTrip(gtfs.Trip{ID: "T2", RouteID: "R2", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T2", StopID: "M1", ArrivalSec: sec(8, 19, 0), DepartureSec: sec(8, 20, 0), Seq: 5})
	g.AddStopTime(gtfs.StopTime{TripID: "T2", StopID: "B", ArrivalSec: sec(8, 30, 0), DepartureSec: sec(8, 30, 0), Seq: 6})
	return g
}

// twoTransferFixture requires two changes: A -> M1 -> M2 -> B on three trips.
func twoTransferFixture() *gtfs.Index {
	g := baseFixture()
	g.AddTrip(gtfs.Trip{ID: "T1", RouteID: "R1", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "A", ArrivalSec: sec(8, 8, 0), DepartureSec: sec(8, 8, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "M1", ArrivalSec: sec(8, 12, 0), DepartureSec: sec(8, 12, 0), Seq: 2})
	g.AddTrip(gtfs.Trip{ID: "T2", RouteID: "R2", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T2", StopID: "M1", ArrivalSec: sec(8, 15, 0), DepartureSec: sec(8, 15, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T2", StopID: "M2", ArrivalSec: sec(8, 19, 0), DepartureSec: sec(8, 19, 0), Seq: 2})
	g.AddTrip(gtfs.Trip{ID: "T3", RouteID: "R3", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T3", StopID: "M2", ArrivalSec: sec(8, 24, 0), DepartureSec: sec(8, 24, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T3", StopID: "B", ArrivalSec: sec(8, 35, 0), DepartureSec: sec(8, 35, 0), Seq: 2})
	return g
}

func legKinds(j *journey.Journey) []journey.LegKind {
	out := make([]journey.LegKind, len(j.Legs))
	for i, l := range j.Legs {
		out[i] = l.Kind
	}
	return out
}

func TestPlanJourney_Direct(t *testing.T) {
	p := New(directFixture(), Options{})
	j, err := p.PlanJourney(testOrigin, testDestination, monday)
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	if err := j.Validate(); err != nil {
		t.Fatalf("journey invalid: %v", err)
	}

	wantKinds := []journey.LegKind{journey.LegWalk, journey.LegWait, journey.LegRide, journey.LegWalk}
	if !reflect.DeepEqual(legKinds(j), wantKinds) {
		t.Fatalf("leg kinds = %v, want %v", legKinds(j), wantKinds)
	}
	if j.Transfers != 0 {
		t.Errorf("transfers = %d, want 0", j.Transfers)
	}

	walk, wait, ride := j.Legs[0], j.Legs[1], j.Legs[2]
	if walk.DurationMin != 5 {
		t.Errorf("walk duration = %d min, want 5", walk.DurationMin)
	}
	if wait.DurationMin != 3 {
		t.Errorf("wait duration = %d min, want 3", wait.DurationMin)
	}
	if ride.DurationMin != 12 {
		t.Errorf("ride duration = %d min, want 12", ride.DurationMin)
	}
	if ride.Line == nil || ride.Line.ShortName != "1" || ride.Line.Color != "FF0000" {
		t.Errorf("ride line = %+v, want short name 1", ride.Line)
	}

	wantBoard := time.Date(2026, 3, 2, 8, 8, 0, 0, time.UTC)
	if !ride.Start.Equal(wantBoard) {
		t.Errorf("ride start = %v, want %v", ride.Start, wantBoard)
	}
	wantArrive := time.Date(2026, 3, 2, 8, 20, 0, 0, time.UTC)
	if !ride.End.Equal(wantArrive) {
		t.Errorf("ride end = %v, want %v", ride.End, wantArrive)
	}
	if j.TotalDurationMin != 25 {
		t.Errorf("total duration = %d min, want 25", j.TotalDurationMin)
	}
}

func TestPlanJourney_OneTransfer(t *testing.T) {
	p := New(transferFixture(), Options{})
	j, err := p.PlanJourney(testOrigin, testDestination, monday)
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	if err := j.Validate(); err != nil {
		t.Fatalf("journey invalid: %v", err)
	}

	wantKinds := []journey.LegKind{
		journey.LegWalk, journey.LegWait, journey.LegRide,
		journey.LegWait, journey.LegRide, journey.LegWalk,
	}
	if !reflect.DeepEqual(legKinds(j), wantKinds) {
		t.Fatalf("leg kinds = %v, want %v", legKinds(j), wantKinds)
	}
	if j.Transfers != 1 {
		t.Errorf("transfers = %d, want 1", j.Transfers)
	}
	transferWait := j.Legs[3]
	if transferWait.DurationMin != 5 {
		t.Errorf("transfer wait = %d min, want 5", transferWait.DurationMin)
	}
	if transferWait.From.Name != "Xardins" {
		t.Errorf("transfer at %q, want Xardins", transferWait.From.Name)
	}
	wantArrive := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	if !j.Arrival.Equal(wantArrive) {
		t.Errorf("arrival = %v, want %v", j.Arrival, wantArrive)
	}
}

func TestPlanJourney_TwoTransfers(t *testing.T) {
	p := New(twoTransferFixture(), Options{})
	j, err := p.PlanJourney(testOrigin, testDestination, monday)
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	if err := j.Validate(); err != nil {
		t.Fatalf("journey invalid: %v", err)
	}

	wantKinds := []journey.LegKind{
		journey.LegWalk, journey.LegWait, journey.LegRide,
		journey.LegWait, journey.LegRide,
		journey.LegWait, journey.LegRide, journey.LegWalk,
	}
	if !reflect.DeepEqual(legKinds(j), wantKinds) {
		t.Fatalf("leg kinds = %v, want %v", legKinds(j), wantKinds)
	}
	if j.Transfers != 2 {
		t.Errorf("transfers = %d, want 2", j.Transfers)
	}
	wantArrive := time.Date(2026, 3, 2, 8, 35, 0, 0, time.UTC)
	if !j.Arrival.Equal(wantArrive) {
		t.Errorf("arrival = %v, want %v", j.Arrival, wantArrive)
	}
}

func TestPlanJourney_WaitBounds(t *testing.T) {
	for _, fixture := range []func() *gtfs.Index{directFixture, transferFixture, twoTransferFixture} {
		p := New(fixture(), Options{})
		j, err := p.PlanJourney(testOrigin, testDestination, monday)
		if err != nil {
			t.Fatalf("PlanJourney: %v", err)
		}
		var walkEnd time.Time
		for i, l := range j.Legs {
			if l.Kind == journey.LegWait && l.DurationMin > 10 {
				t.Errorf("leg %d: wait of %d min exceeds the 10 min bound", i, l.DurationMin)
			}
			if l.Kind == journey.LegWalk && i == 0 {
				walkEnd = l.End
			}
			if l.Kind == journey.LegRide && l.Start.Before(walkEnd) {
				t.Errorf("leg %d: boards at %v before the stop is reachable at %v", i, l.Start, walkEnd)
			}
		}
	}
}

func TestPlanJourney_DepartureOutsideWaitWindow(t *testing.T) {
	tests := []struct {
		name   string
		depart int
	}{
		{name: "departs before the stop is reachable", depart: sec(8, 4, 0)},
		{name: "departs after the ten minute wait ceiling", depart: sec(8, 16, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := baseFixture()
			g.AddTrip(gtfs.Trip{ID: "T1", RouteID: "R1", ServiceID: "WKD"})
			g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "A", ArrivalSec: tt.depart, DepartureSec: tt.depart, Seq: 1})
			g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "B", ArrivalSec: tt.depart + 720, DepartureSec: tt.depart + 720, Seq: 2})

			p := New(g, Options{})
			if _, err := p.PlanJourney(testOrigin, testDestination, monday); !errors.Is(err, ErrNoRoute) {
				t.Errorf("err = %v, want ErrNoRoute", err)
			}
		})
	}
}

func TestPlanJourney_WrongDirection(t *testing.T) {
	// The only trip visits the destination stop before the origin stop.
	g := baseFixture()
	g.AddTrip(gtfs.Trip{ID: "T1", RouteID: "R1", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "B", ArrivalSec: sec(8, 8, 0), DepartureSec: sec(8, 8, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T1", StopID: "A", ArrivalSec: sec(8, 10, 0), DepartureSec: sec(8, 10, 0), Seq: 2})

	p := New(g, Options{})
	if _, err := p.PlanJourney(testOrigin, testDestination, monday); !errors.Is(err, ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
}

func TestPlanJourney_ServiceRemovedToday(t *testing.T) {
	g := directFixture()
	g.AddCalendarDate(gtfs.CalendarDate{ServiceID: "WKD", Date: 20260302, Exception: gtfs.ExceptionRemoved})

	p := New(g, Options{})
	if _, err := p.PlanJourney(testOrigin, testDestination, monday); !errors.Is(err, ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
}

func TestPlanJourney_PrefersEarliestArrival(t *testing.T) {
	g := directFixture() // TA-equivalent: arrives 08:20
	// A later departure that arrives earlier must win.
	g.AddTrip(gtfs.Trip{ID: "T2", RouteID: "R2", ServiceID: "WKD"})
	g.AddStopTime(gtfs.StopTime{TripID: "T2", StopID: "A", ArrivalSec: sec(8, 10, 0), DepartureSec: sec(8, 10, 0), Seq: 1})
	g.AddStopTime(gtfs.StopTime{TripID: "T2", StopID: "B", ArrivalSec: sec(8, 18, 0), DepartureSec: sec(8, 18, 0), Seq: 2})

	p := New(g, Options{})
	j, err := p.PlanJourney(testOrigin, testDestination, monday)
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	wantArrive := time.Date(2026, 3, 2, 8, 18, 0, 0, time.UTC)
	if !j.Arrival.Equal(wantArrive) {
		t.Errorf("arrival = %v, want %v (earliest arrival must win)", j.Arrival, wantArrive)
	}
}

func TestPlanJourney_Deterministic(t *testing.T) {
	p := New(transferFixture(), Options{})
	first, err := p.PlanJourney(testOrigin, testDestination, monday)
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := p.PlanJourney(testOrigin, testDestination, monday)
		if err != nil {
			t.Fatalf("PlanJourney (repeat %d): %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("repeat %d returned a different journey", i)
		}
	}
}

func TestPlanJourney_NoSchedule(t *testing.T) {
	p := New(gtfs.NewIndex(), Options{})
	if p.HasSchedule() {
		t.Error("HasSchedule = true on empty index")
	}
	if _, err := p.PlanJourney(testOrigin, testDestination, monday); !errors.Is(err, ErrNoSchedule) {
		t.Errorf("err = %v, want ErrNoSchedule", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.MaxWaitSeconds != 600 || o.NearestStopCount != 20 || o.MaxTransfers != 2 || o.WalkSpeedMPM != 80 {
		t.Errorf("defaults = %+v", o)
	}
	capped := Options{MaxTransfers: 5}.withDefaults()
	if capped.MaxTransfers != 2 {
		t.Errorf("MaxTransfers not capped: %d", capped.MaxTransfers)
	}
}
