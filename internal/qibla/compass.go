package qibla

import "math"

// Compass combines the Qibla bearing with the device heading
type Compass struct {
	Qibla   float64 // bearing toward the Kaaba, degrees from north
	Heading float64 // device heading, degrees from north
}

// Rotation is how far the compass rose must turn so north points north
func (c Compass) Rotation() float64 {
	return Normalize(360 - c.Heading)
}

// QiblaRotation is the rotation of the Kaaba marker on screen
func (c Compass) QiblaRotation() float64 {
	return Normalize(c.Rotation() + c.Qibla)
}

// Aligned reports whether the device points at the Qibla within tolerance degrees
func (c Compass) Aligned(tolerance float64) bool {
	diff := math.Abs(c.QiblaRotation())
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= tolerance
}

// HeadingFromAlpha converts a deviceorientation alpha angle to a compass heading
func HeadingFromAlpha(alpha float64) float64 {
	return Normalize(math.Abs(alpha - 360))
}
