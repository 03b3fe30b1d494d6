package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/config"
	"github.com/dastanaron/tilawah/internal/prayer"
	"github.com/dastanaron/tilawah/internal/qibla"
)

// locationFlags adds --lat/--lon and returns a function resolving the
// locator: the flags when given, otherwise the configured position
func (c *cli) locationFlags(cmd *cobra.Command) func() (qibla.Locator, error) {
	var lat, lon string
	cmd.Flags().StringVar(&lat, "lat", "", "Latitude in decimal degrees (default: TILAWAH_LAT)")
	cmd.Flags().StringVar(&lon, "lon", "", "Longitude in decimal degrees (default: TILAWAH_LON)")
	return func() (qibla.Locator, error) {
		if lat == "" && lon == "" {
			return c.app.Locator, nil
		}
		pos, err := config.ParsePosition(lat, lon)
		if err != nil {
			return nil, err
		}
		return qibla.StaticLocator{Position: &pos}, nil
	}
}

// locationFailure turns a location error into the message shown to the user
func locationFailure(err error) error {
	var le *qibla.LocationError
	if errors.As(err, &le) {
		return errors.New(le.UserMessage())
	}
	return err
}

func (c *cli) qiblaCmd() *cobra.Command {
	var heading float64
	cmd := &cobra.Command{
		Use:   "qibla",
		Short: "Show the Qibla direction from your location",
		Long: `Prints the great-circle bearing toward the Kaaba, in degrees clockwise from
true north. With --heading (the direction you are facing) it also prints how
far to turn.`,
		Args: cobra.NoArgs,
	}
	locator := c.locationFlags(cmd)
	cmd.Flags().Float64Var(&heading, "heading", -1, "Your compass heading in degrees")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		loc, err := locator()
		if err != nil {
			return err
		}
		var hs qibla.HeadingSource
		if heading >= 0 {
			hs = qibla.StaticHeading(heading)
		}
		compass, err := qibla.Resolve(cmd.Context(), loc, hs)
		if err != nil {
			c.log.WithError(err).Debug("qibla lookup failed")
			return locationFailure(err)
		}
		c.printf("Qibla: %.1f°\n", compass.Qibla)
		if hs == nil {
			return nil
		}
		turn := compass.QiblaRotation()
		if compass.Aligned(5) {
			c.printf("You are facing the Qibla\n")
		} else if turn <= 180 {
			c.printf("Turn %.1f° right\n", turn)
		} else {
			c.printf("Turn %.1f° left\n", 360-turn)
		}
		return nil
	}
	return cmd
}

func (c *cli) prayersCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "prayers",
		Short: "Show today's prayer times for your location",
		Long: `Fetches the prayer times (ISNA calculation method) for your location.

> NOTICE: This command calls out to the network`,
		Args: cobra.NoArgs,
	}
	locator := c.locationFlags(cmd)
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default: today)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		loc, err := locator()
		if err != nil {
			return err
		}
		pos, err := loc.Locate(cmd.Context())
		if err != nil {
			return locationFailure(err)
		}

		now := time.Now()
		day := now
		if date != "" {
			day, err = time.ParseInLocation("2006-01-02", date, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
		}

		data, err := c.app.Prayers.Timings(cmd.Context(), pos.Lat, pos.Lon, day)
		if err != nil {
			return err
		}
		c.printf("%s (%s %s %s)\n", data.Date.Readable,
			data.Date.Hijri.Day, data.Date.Hijri.Month.En, data.Date.Hijri.Year)

		isToday := day.Format("2006-01-02") == now.Format("2006-01-02")
		for _, e := range prayer.Entries(data.Timings) {
			mark := " "
			if isToday && prayer.IsPast(e.Clock, now) {
				mark = "✓"
			}
			c.printf("%s %-8s %s\n", mark, e.Name, e.Clock)
		}
		if isToday {
			next, at, err := prayer.Next(data.Timings, now)
			if err != nil {
				return err
			}
			c.printf("Next: %s in %s\n", next.Name, at.Sub(now).Truncate(time.Minute))
		}
		return nil
	}
	return cmd
}
