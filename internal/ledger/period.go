package ledger

import "time"

// WeekStart is the first day of a weekly bucket.
const WeekStart = time.Monday

// BucketStart truncates t to the start of the week, month or year containing
// it, in t's location. PeriodNone returns t unchanged.
func (p Period) BucketStart(t time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) - int(WeekStart) + 7) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case PeriodYearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// PrevBucket returns the start of the bucket preceding the one starting at start.
func (p Period) PrevBucket(start time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return start.AddDate(0, 0, -7)
	case PeriodMonthly:
		return start.AddDate(0, -1, 0)
	case PeriodYearly:
		return start.AddDate(-1, 0, 0)
	}
	return start
}

// Granularity is the bucket size used for charts; monthly when no period is set.
func (p Period) Granularity() Period {
	if p == PeriodNone {
		return PeriodMonthly
	}
	return p
}
