package analytics

import "time"

const dateLayout = "2006-01-02"

// CounterRow is one per-user per-day counter record as fetched from storage.
// Date is the raw "YYYY-MM-DD" value; rows with unparseable dates are skipped
// during aggregation rather than surfaced as errors.
type CounterRow struct {
	Date    string `json:"date" db:"date"`
	Success int    `json:"success_count" db:"success_count"`
	Failure int    `json:"failure_count" db:"failure_count"`
	Pause   int    `json:"pause_count" db:"pause_count"`
}

// DailyCounts holds the three outcome arrays, index i = day i+1 of the month.
type DailyCounts struct {
	Success []int
	Failure []int
	Pause   []int
}

// AggregateDaily folds counter rows into per-day buckets. Malformed rows and
// rows belonging to another month are ignored so a single bad record cannot
// corrupt the rest of the month.
func AggregateDaily(rows []CounterRow, days int) DailyCounts {
	counts := DailyCounts{
		Success: make([]int, days),
		Failure: make([]int, days),
		Pause:   make([]int, days),
	}

	for _, row := range rows {
		parsed, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			continue
		}

		day := parsed.Day()
		if day < 1 || day > days {
			continue
		}

		i := day - 1
		counts.Success[i] += nonNegative(row.Success)
		counts.Failure[i] += nonNegative(row.Failure)
		counts.Pause[i] += nonNegative(row.Pause)
	}

	return counts
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
