package analytics

const msPerHour = 3_600_000

// DailySeries is the aggregated month view consumed by the dashboard chart.
// All four arrays share the same length; index i represents day i+1.
type DailySeries struct {
	Success   []int `json:"success"`
	Failure   []int `json:"failure"`
	Pause     []int `json:"pause"`
	LiveHours []int `json:"live_hours"`
}

// BuildSeries merges the daily counters with per-day live milliseconds.
// Partial hours round up so any live activity on a day stays visible; a day
// with zero milliseconds stays at zero.
func BuildSeries(counts DailyCounts, msPerDay []int64) DailySeries {
	hours := make([]int, len(msPerDay))
	for i, ms := range msPerDay {
		if ms == 0 {
			continue
		}
		hours[i] = int((ms + msPerHour - 1) / msPerHour)
	}

	return DailySeries{
		Success:   counts.Success,
		Failure:   counts.Failure,
		Pause:     counts.Pause,
		LiveHours: hours,
	}
}
