// Package utils provides small geo and time-of-day helpers shared by the
// schedule index and the journey planner.
package utils
