// Package journey defines the itinerary model produced by the planner: an
// ordered chain of walk, wait and ride legs with concrete clock times.
package journey
