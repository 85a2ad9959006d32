package gtfs

import (
	"sort"
)

// Index stores a GTFS static snapshot in memory for fast lookups. It is
// built once at load time and never mutated afterwards, so it is safe for
// concurrent readers. All query methods return deterministically ordered
// results.
type Index struct {
	stops         map[string]Stop
	routes        map[string]Route
	trips         map[string]Trip
	stopTimes     map[string][]StopTime          // trip_id -> visits ordered by Seq
	tripsByStop   map[string]map[string]struct{} // stop_id -> set of trip_ids
	calendars     map[string]Calendar            // service_id -> calendar
	calendarDates map[string][]CalendarDate      // service_id -> exceptions
}

// NewIndex creates a new empty schedule index.
func NewIndex() *Index {
	return &Index{
		stops:         map[string]Stop{},
		routes:        map[string]Route{},
		trips:         map[string]Trip{},
		stopTimes:     map[string][]StopTime{},
		tripsByStop:   map[string]map[string]struct{}{},
		calendars:     map[string]Calendar{},
		calendarDates: map[string][]CalendarDate{},
	}
}

// AddStop records a stop, replacing any previous stop with the same id.
func (g *Index) AddStop(s Stop) { g.stops[s.ID] = s }

// AddRoute records a route.
func (g *Index) AddRoute(r Route) { g.routes[r.ID] = r }

// AddTrip records a trip.
func (g *Index) AddTrip(t Trip) { g.trips[t.ID] = t }

// AddStopTime records one scheduled visit, keeping the trip's visit list
// ordered by sequence index.
func (g *Index) AddStopTime(st StopTime) {
	visits := g.stopTimes[st.TripID]
	pos := sort.Search(len(visits), func(i int) bool { return visits[i].Seq >= st.Seq })
	visits = append(visits, StopTime{})
	copy(visits[pos+1:], visits[pos:])
	visits[pos] = st
	g.stopTimes[st.TripID] = visits

	set, ok := g.tripsByStop[st.StopID]
	if !ok {
		set = map[string]struct{}{}
		g.tripsByStop[st.StopID] = set
	}
	set[st.TripID] = struct{}{}
}

// AddCalendar records a service calendar.
func (g *Index) AddCalendar(c Calendar) { g.calendars[c.ServiceID] = c }

// AddCalendarDate records a single-date service exception.
func (g *Index) AddCalendarDate(cd CalendarDate) {
	g.calendarDates[cd.ServiceID] = append(g.calendarDates[cd.ServiceID], cd)
}

// HasSchedule reports whether a usable schedule is loaded. Planning must not
// be attempted on an empty index.
func (g *Index) HasSchedule() bool {
	return len(g.stops) > 0 && len(g.trips) > 0 && len(g.stopTimes) > 0
}

// AllStops returns every stop, ordered by stop id.
func (g *Index) AllStops() []Stop {
	out := make([]Stop, 0, len(g.stops))
	for _, s := range g.stops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StopByID looks up a stop.
func (g *Index) StopByID(stopID string) (Stop, bool) {
	s, ok := g.stops[stopID]
	return s, ok
}

// RouteByID looks up a route.
func (g *Index) RouteByID(routeID string) (Route, bool) {
	r, ok := g.routes[routeID]
	return r, ok
}

// TripByID looks up a trip.
func (g *Index) TripByID(tripID string) (Trip, bool) {
	t, ok := g.trips[tripID]
	return t, ok
}

// TripIDsByStop returns the ids of every trip visiting the stop, sorted.
func (g *Index) TripIDsByStop(stopID string) []string {
	set := g.tripsByStop[stopID]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// StopTimesForTrip returns the trip's visits ordered by sequence index.
// The returned slice is shared; callers must not modify it.
func (g *Index) StopTimesForTrip(tripID string) []StopTime {
	return g.stopTimes[tripID]
}

// StopTimeAt returns the trip's first visit at the given stop.
func (g *Index) StopTimeAt(tripID, stopID string) (StopTime, bool) {
	for _, st := range g.stopTimes[tripID] {
		if st.StopID == stopID {
			return st, true
		}
	}
	return StopTime{}, false
}

// CalendarForService looks up the weekly calendar of a service.
func (g *Index) CalendarForService(serviceID string) (Calendar, bool) {
	c, ok := g.calendars[serviceID]
	return c, ok
}

// CalendarDatesForService returns the single-date exceptions of a service.
func (g *Index) CalendarDatesForService(serviceID string) []CalendarDate {
	return g.calendarDates[serviceID]
}

// Stats reports entity counts of the loaded snapshot.
func (g *Index) Stats() Stats {
	st := Stats{
		Stops:     len(g.stops),
		Routes:    len(g.routes),
		Trips:     len(g.trips),
		Calendars: len(g.calendars),
	}
	for _, v := range g.stopTimes {
		st.StopTimes += len(v)
	}
	for _, v := range g.calendarDates {
		st.CalendarDates += len(v)
	}
	return st
}
