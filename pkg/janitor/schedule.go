package janitor

import (
	"fmt"
	"time"
)

// Schedule decides when the next run is due.
type Schedule interface {
	Next(from time.Time) time.Time
	String() string
}

type intervalSchedule struct {
	every time.Duration
}

func (s intervalSchedule) Next(from time.Time) time.Time { return from.Add(s.every) }
func (s intervalSchedule) String() string                { return fmt.Sprintf("every %v", s.every) }

type hourlySchedule struct {
	minute int
}

func (s hourlySchedule) Next(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), s.minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.Add(time.Hour)
	}
	return next
}

func (s hourlySchedule) String() string { return fmt.Sprintf("hourly at :%02d", s.minute) }

type dailySchedule struct {
	hour, minute int
}

func (s dailySchedule) Next(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), s.hour, s.minute, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s dailySchedule) String() string { return fmt.Sprintf("daily at %02d:%02d", s.hour, s.minute) }

// Every runs at a fixed interval measured from the end of the previous run.
func Every(d time.Duration) Schedule {
	return intervalSchedule{every: d}
}

// HourlyAt runs once an hour at the given minute.
func HourlyAt(minute int) Schedule {
	return hourlySchedule{minute: ((minute % 60) + 60) % 60}
}

// DailyAt runs once a day at hour:minute in the location of the clock.
func DailyAt(hour, minute int) Schedule {
	return dailySchedule{hour: ((hour % 24) + 24) % 24, minute: ((minute % 60) + 60) % 60}
}

// ParseSchedule accepts a Go duration ("30m") or a daily time ("03:15").
func ParseSchedule(s string) (Schedule, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return nil, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidSchedule, d)
		}
		return Every(d), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return DailyAt(t.Hour(), t.Minute()), nil
	}
	return nil, fmt.Errorf("%w: %q is neither a duration nor HH:MM", ErrInvalidSchedule, s)
}
