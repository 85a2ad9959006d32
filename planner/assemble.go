package planner

import (
	"fmt"
	"time"

	"github.com/ourenbus/journey-planner/gtfs"
	"github.com/ourenbus/journey-planner/journey"
	"github.com/ourenbus/journey-planner/utils"
)

// assemble renders a found chain into an ordered leg sequence with concrete
// clock times on the query date: walk to the first stop, an optional wait,
// one ride per boarded trip with inter-ride waits, and a final walk.
func (p *Planner) assemble(origin, destination journey.Point, chain []ride, now time.Time) *journey.Journey {
	nowSec := utils.SecondsOfDay(now)
	firstStop := p.stopPoint(chain[0].Board.StopID)

	walkMin := p.walkMinutes(origin.Lat, origin.Lon, firstStop.Lat, firstStop.Lon)
	earliestBoard := nowSec + walkMin*60

	j := &journey.Journey{Origin: origin, Destination: destination}
	t0 := utils.ClockTime(now, nowSec)

	walkEnd := t0.Add(time.Duration(walkMin) * time.Minute)
	j.Legs = append(j.Legs, journey.Leg{
		Kind:        journey.LegWalk,
		From:        origin,
		To:          firstStop,
		Start:       t0,
		End:         walkEnd,
		DistanceM:   utils.DistanceMeters(origin.Lat, origin.Lon, firstStop.Lat, firstStop.Lon),
		DurationMin: walkMin,
		Instruction: fmt.Sprintf("Walk to stop %s", firstStop.Name),
	})

	prevEnd := walkEnd
	prevArrival := earliestBoard
	prevPoint := firstStop
	for _, r := range chain {
		boardStop := p.stopPoint(r.Board.StopID)
		alightStop := p.stopPoint(r.Alight.StopID)

		if waitMin := (r.Board.DepartureSec - prevArrival) / 60; waitMin > 0 {
			waitEnd := utils.ClockTime(now, r.Board.DepartureSec)
			j.Legs = append(j.Legs, journey.Leg{
				Kind:        journey.LegWait,
				From:        boardStop,
				To:          boardStop,
				Start:       prevEnd,
				End:         waitEnd,
				DurationMin: waitMin,
				Instruction: fmt.Sprintf("Wait %d min at %s", waitMin, boardStop.Name),
			})
			prevEnd = waitEnd
		}

		rideMin := (r.Alight.ArrivalSec - r.Board.DepartureSec) / 60
		if rideMin < 1 {
			rideMin = 1
		}
		line := p.lineRef(r.Trip)
		rideEnd := utils.ClockTime(now, r.Alight.ArrivalSec)
		j.Legs = append(j.Legs, journey.Leg{
			Kind:        journey.LegRide,
			From:        boardStop,
			To:          alightStop,
			Start:       utils.ClockTime(now, r.Board.DepartureSec),
			End:         rideEnd,
			DistanceM:   utils.DistanceMeters(boardStop.Lat, boardStop.Lon, alightStop.Lat, alightStop.Lon),
			DurationMin: rideMin,
			Line:        line,
			Instruction: fmt.Sprintf("Take line %s from %s to %s", line.ShortName, boardStop.Name, alightStop.Name),
		})
		prevEnd = rideEnd
		prevArrival = r.Alight.ArrivalSec
		prevPoint = alightStop
	}

	lastWalkMin := p.walkMinutes(prevPoint.Lat, prevPoint.Lon, destination.Lat, destination.Lon)
	j.Legs = append(j.Legs, journey.Leg{
		Kind:        journey.LegWalk,
		From:        prevPoint,
		To:          destination,
		Start:       prevEnd,
		End:         prevEnd.Add(time.Duration(lastWalkMin) * time.Minute),
		DistanceM:   utils.DistanceMeters(prevPoint.Lat, prevPoint.Lon, destination.Lat, destination.Lon),
		DurationMin: lastWalkMin,
		Instruction: "Walk to destination",
	})

	j.Finalize()
	return j
}

func (p *Planner) stopPoint(stopID string) journey.Point {
	s, ok := p.idx.StopByID(stopID)
	if !ok {
		return journey.Point{Name: stopID}
	}
	return journey.Point{Name: s.Name, Lat: s.Lat, Lon: s.Lon}
}

func (p *Planner) lineRef(trip gtfs.Trip) *journey.LineRef {
	ref := &journey.LineRef{RouteID: trip.RouteID, Headsign: trip.Headsign}
	if route, ok := p.idx.RouteByID(trip.RouteID); ok {
		ref.ShortName = route.ShortName
		ref.LongName = route.LongName
		ref.Color = route.Color
	}
	if ref.ShortName == "" {
		ref.ShortName = trip.RouteID
	}
	return ref
}
