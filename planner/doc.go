/*
Package planner implements static-timetable journey planning over a loaded
gtfs.Index snapshot.

Given a geographic origin, destination and a "now" instant, it selects the
nearest candidate stops for both endpoints, then searches each stop pair for
an itinerary with zero, one or two vehicle changes, bounded by a maximum wait
per boarding. The first pair that yields any itinerary wins; within a pair the
earliest final arrival wins.

Planning is a pure, synchronous, read-only computation with no shared mutable
state: a Planner may be used concurrently from multiple goroutines as long as
the underlying index is not mutated (it never is after loading).
*/
package planner
