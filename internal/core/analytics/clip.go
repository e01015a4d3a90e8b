package analytics

import "time"

// Interval is a live-streaming session's time span. EndedAt is nil while the
// session is still on air; a zero StartedAt (or a zero *EndedAt) marks a value
// that failed to parse upstream and disqualifies the interval.
type Interval struct {
	StartedAt time.Time  `json:"started_at" db:"started_at"`
	EndedAt   *time.Time `json:"ended_at" db:"ended_at"`
}

// ClipIntervalsToDays distributes each session's duration across the calendar
// days of the month window, in milliseconds per day. Open sessions extend to
// the supplied now; time outside the window is discarded.
func ClipIntervalsToDays(intervals []Interval, w MonthWindow, now time.Time) []int64 {
	msPerDay := make([]int64, w.Days)

	monthStart := w.Start.UnixMilli()
	monthEnd := w.End.UnixMilli()

	for _, iv := range intervals {
		if iv.StartedAt.IsZero() {
			continue
		}

		end := now
		if iv.EndedAt != nil {
			end = *iv.EndedAt
		}
		if end.IsZero() {
			continue
		}

		cursor := iv.StartedAt.UnixMilli()
		stop := end.UnixMilli()

		if cursor < monthStart {
			cursor = monthStart
		}
		if stop > monthEnd {
			stop = monthEnd
		}
		if stop <= cursor {
			continue
		}

		for cursor < stop {
			t := time.UnixMilli(cursor).UTC()

			idx := t.Day() - 1
			if idx < 0 || idx >= w.Days {
				// Pathological input; never write out of bounds.
				break
			}

			dayEnd := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC).UnixMilli()

			segmentEnd := stop
			if dayEnd < segmentEnd {
				segmentEnd = dayEnd
			}

			if d := segmentEnd - cursor; d > 0 {
				msPerDay[idx] += d
			}

			// Start of the next calendar day.
			cursor = dayEnd + 1
		}
	}

	return msPerDay
}
