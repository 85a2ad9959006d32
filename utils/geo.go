package utils

import (
	"math"
)

const (
	earthRadiusKM = 6371.0

	// WalkSpeedMetersPerMinute is the assumed pedestrian speed (4.8 km/h).
	WalkSpeedMetersPerMinute = 80.0
)

// HaversineKM returns the great-circle distance between two points in kilometers.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// DistanceMeters returns the great-circle distance between two points in meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineKM(lat1, lon1, lat2, lon2) * 1000
}

// WalkMinutes estimates the walking time between two points, never less than
// one minute.
func WalkMinutes(lat1, lon1, lat2, lon2 float64) int {
	m := DistanceMeters(lat1, lon1, lat2, lon2)
	min := int(math.Round(m / WalkSpeedMetersPerMinute))
	if min < 1 {
		return 1
	}
	return min
}
