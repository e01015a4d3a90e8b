package analytics

import (
	"errors"
	"time"
)

var (
	ErrInvalidMonth = errors.New("month index must be between 0 and 11")
)

// MonthWindow describes one calendar month in UTC. Start is the first day at
// midnight, End is the last day at 23:59:59.999, Days is the day count (28-31).
type MonthWindow struct {
	Year       int
	MonthIndex int // 0-based, January = 0
	Start      time.Time
	End        time.Time
	Days       int
}

// ResolveMonth computes the window for (year, monthIndex), rolling over the
// year boundary for December.
func ResolveMonth(year, monthIndex int) (MonthWindow, error) {
	if monthIndex < 0 || monthIndex > 11 {
		return MonthWindow{}, ErrInvalidMonth
	}

	start := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)

	// Day zero of the following month normalizes to the last day of the
	// target month.
	end := time.Date(year, time.Month(monthIndex+2), 0, 23, 59, 59, 999_000_000, time.UTC)

	return MonthWindow{
		Year:       year,
		MonthIndex: monthIndex,
		Start:      start,
		End:        end,
		Days:       end.Day(),
	}, nil
}
