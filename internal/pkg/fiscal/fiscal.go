package fiscal

import "time"

// The financial year runs 1 April through 31 March. Year(t) reports the
// calendar year the financial year starts in, so March 2026 belongs to 2025.

func Year(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// Window returns the inclusive start and end dates of the financial year
// containing t.
func Window(t time.Time) (time.Time, time.Time) {
	y := Year(t)
	start := time.Date(y, time.April, 1, 0, 0, 0, 0, t.Location())
	end := time.Date(y+1, time.March, 31, 0, 0, 0, 0, t.Location())
	return start, end
}

// Label formats a financial year as "2025-26".
func Label(t time.Time) string {
	start, end := Window(t)
	return start.Format("2006") + "-" + end.Format("06")
}
