package analytics

import "time"

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyCounts buckets timestamps into UTC calendar days, oldest first,
// covering the `days` days ending today. Each bucket is the half-open
// interval [day 00:00, next day 00:00); timestamps outside the window are
// ignored. Empty days still appear with a zero count.
func DailyCounts(times []time.Time, now time.Time, days int) []DayCount {
	if days <= 0 {
		return nil
	}

	start := dayStart(now).AddDate(0, 0, -(days - 1))

	out := make([]DayCount, days)
	for i := range out {
		out[i].Day = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	for _, t := range times {
		idx := int(dayStart(t).Sub(start).Hours() / 24)
		if idx < 0 || idx >= days {
			continue
		}
		out[idx].Count++
	}

	return out
}
