package janitor

import "errors"

var (
	ErrInvalidSchedule = errors.New("invalid cleanup schedule")
	ErrNoJob           = errors.New("janitor has no job")
)
