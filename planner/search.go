package planner

import (
	"time"

	"github.com/ourenbus/journey-planner/gtfs"
)

// ride is one boarded vehicle within an itinerary chain: the trip plus the
// visits where the traveler boards and alights. Board.Seq < Alight.Seq always.
type ride struct {
	Trip   gtfs.Trip
	Board  gtfs.StopTime
	Alight gtfs.StopTime
}

// bestChain finds the earliest-arriving chain from originStop to destStop
// using exactly the given number of transfers. The first boarding must depart
// within [earliestBoard, earliestBoard+maxWait]; every transfer wait must lie
// in [0, maxWait]. Returns nil when no feasible chain exists.
func (p *Planner) bestChain(originStop, destStop gtfs.Stop, earliestBoard int, date time.Time, transfers int) []ride {
	latestBoard := earliestBoard + p.opts.MaxWaitSeconds
	var best []ride
	bestArrival := 0
	for _, tripID := range p.idx.TripIDsByStop(originStop.ID) {
		trip, ok := p.idx.TripByID(tripID)
		if !ok || !ServiceActiveOn(p.idx, trip.ServiceID, date) {
			continue
		}
		board, ok := p.idx.StopTimeAt(tripID, originStop.ID)
		if !ok {
			continue
		}
		if board.DepartureSec < earliestBoard || board.DepartureSec > latestBoard {
			continue
		}
		chain, arrival := p.extend(trip, board, destStop.ID, date, transfers, board.DepartureSec)
		if chain == nil {
			continue
		}
		if best == nil || arrival < bestArrival {
			best = chain
			bestArrival = arrival
		}
	}
	return best
}

// extend completes a chain whose latest boarding is (trip, board). With no
// transfers left the current trip must itself reach destStopID at a later
// sequence index; otherwise every later visit of the current trip is a
// candidate transfer point onto a different active trip. firstDeparture is
// the initial boarding time of the whole chain; the final arrival must come
// after it. Returns the chain suffix and its final arrival seconds.
func (p *Planner) extend(trip gtfs.Trip, board gtfs.StopTime, destStopID string, date time.Time, transfersLeft, firstDeparture int) ([]ride, int) {
	if transfersLeft == 0 {
		alight, ok := p.idx.StopTimeAt(trip.ID, destStopID)
		if !ok || alight.Seq <= board.Seq {
			return nil, 0
		}
		if alight.ArrivalSec <= firstDeparture {
			return nil, 0
		}
		return []ride{{Trip: trip, Board: board, Alight: alight}}, alight.ArrivalSec
	}

	var best []ride
	bestArrival := 0
	for _, mid := range p.idx.StopTimesForTrip(trip.ID) {
		if mid.Seq <= board.Seq {
			continue
		}
		for _, nextID := range p.idx.TripIDsByStop(mid.StopID) {
			if nextID == trip.ID {
				continue
			}
			next, ok := p.idx.TripByID(nextID)
			if !ok || !ServiceActiveOn(p.idx, next.ServiceID, date) {
				continue
			}
			reboard, ok := p.idx.StopTimeAt(nextID, mid.StopID)
			if !ok {
				continue
			}
			wait := reboard.DepartureSec - mid.ArrivalSec
			if wait < 0 || wait > p.opts.MaxWaitSeconds {
				continue
			}
			rest, arrival := p.extend(next, reboard, destStopID, date, transfersLeft-1, firstDeparture)
			if rest == nil {
				continue
			}
			if best == nil || arrival < bestArrival {
				best = append([]ride{{Trip: trip, Board: board, Alight: mid}}, rest...)
				bestArrival = arrival
			}
		}
	}
	return best, bestArrival
}
