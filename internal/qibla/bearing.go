// Package qibla computes the direction of prayer from a position on Earth.
package qibla

import "math"

// Coordinates of the Kaaba in Mecca
const (
	KaabaLat = 21.4225
	KaabaLon = 39.8262
)

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// ComputeBearing returns the great-circle initial bearing in degrees, in [0, 360),
// from the origin toward the target. Coincident points yield 0.
func ComputeBearing(originLat, originLon, targetLat, targetLon float64) float64 {
	lat1 := toRad(originLat)
	lat2 := toRad(targetLat)
	dLon := toRad(targetLon) - toRad(originLon)

	// Products are rounded explicitly so the compiler cannot fuse them
	// into an FMA: coincident points must give x == 0 exactly.
	y := math.Sin(dLon) * math.Cos(lat2)
	x := float64(math.Cos(lat1)*math.Sin(lat2)) - float64(math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon))

	return Normalize(toDeg(math.Atan2(y, x)))
}

// Direction returns the Qibla bearing from lat/lon
func Direction(lat, lon float64) float64 {
	return ComputeBearing(lat, lon, KaabaLat, KaabaLon)
}

// Normalize maps any angle in degrees into [0, 360)
func Normalize(deg float64) float64 {
	n := math.Mod(deg+360, 360)
	if n < 0 {
		n += 360
	}
	if n >= 360 {
		n = 0
	}
	return n
}
