package qibla

import (
	"context"
	"errors"
	"fmt"
)

// Position is a geographic position in decimal degrees
type Position struct {
	Lat float64
	Lon float64
}

// Validate checks that the position is on the globe
func (p Position) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lon)
	}
	return nil
}

// Locator is a geolocation source
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// HeadingSource yields the current compass heading of the device
type HeadingSource interface {
	Heading(ctx context.Context) (float64, error)
}

// LocationErrorCode classifies geolocation and orientation failures
type LocationErrorCode int

const (
	PermissionDenied LocationErrorCode = iota + 1
	PositionUnavailable
	Timeout
	Unsupported
)

// LocationError is a retryable failure of a location or heading source
type LocationError struct {
	Code LocationErrorCode
	Err  error
}

func (e *LocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location error: %s: %v", e.UserMessage(), e.Err)
	}
	return "location error: " + e.UserMessage()
}

func (e *LocationError) Unwrap() error { return e.Err }

// Retryable is always true: the user can grant access or move and try again
func (e *LocationError) Retryable() bool { return true }

// UserMessage is the text shown to the reader
func (e *LocationError) UserMessage() string {
	switch e.Code {
	case PermissionDenied:
		return "Location access denied. Allow location access and retry."
	case PositionUnavailable:
		return "Could not determine your location. Try again or set your location manually."
	case Timeout:
		return "Getting location timed out. Ensure your device has a location signal and try again."
	case Unsupported:
		return "Geolocation is not supported here. Set your location manually."
	}
	return "An unexpected error occurred while determining your location."
}

// StaticLocator resolves a fixed, configured position
type StaticLocator struct {
	Position *Position
}

// Locate returns the configured position, or PositionUnavailable when none is set
func (s StaticLocator) Locate(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, &LocationError{Code: Timeout, Err: err}
	}
	if s.Position == nil {
		return Position{}, &LocationError{Code: PositionUnavailable}
	}
	if err := s.Position.Validate(); err != nil {
		return Position{}, &LocationError{Code: PositionUnavailable, Err: err}
	}
	return *s.Position, nil
}

// StaticHeading is a fixed heading, e.g. entered by the user
type StaticHeading float64

func (h StaticHeading) Heading(context.Context) (float64, error) {
	return Normalize(float64(h)), nil
}

// Resolve locates the device and builds the compass. A missing heading
// source is not an error: the static Qibla bearing is still returned with
// heading 0, along with the heading failure.
func Resolve(ctx context.Context, loc Locator, heading HeadingSource) (Compass, error) {
	pos, err := loc.Locate(ctx)
	if err != nil {
		var le *LocationError
		if errors.As(err, &le) {
			return Compass{}, le
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return Compass{}, &LocationError{Code: Timeout, Err: err}
		}
		return Compass{}, &LocationError{Code: PositionUnavailable, Err: err}
	}

	c := Compass{Qibla: Direction(pos.Lat, pos.Lon)}
	if heading == nil {
		return c, nil
	}
	h, err := heading.Heading(ctx)
	if err != nil {
		return c, &LocationError{Code: Unsupported, Err: err}
	}
	c.Heading = h
	return c, nil
}
