package domain

import "sort"

// Ledger maps a date string (YYYY-MM-DD) to per-file open counts for that
// day. Entries are only ever incremented.
type Ledger map[string]map[string]int

// NewLedger creates an empty ledger
func NewLedger() Ledger {
	return Ledger{}
}

// RecordOpen increments the counter for fileName on date, creating the
// day's map as needed
func (l Ledger) RecordOpen(date, fileName string) {
	day := l[date]
	if day == nil {
		day = map[string]int{}
		l[date] = day
	}
	day[fileName]++
}

// MergeFrom adds every counter of other into the ledger
func (l Ledger) MergeFrom(other Ledger) {
	for date, files := range other {
		for fileName, count := range files {
			if count <= 0 {
				continue
			}
			day := l[date]
			if day == nil {
				day = map[string]int{}
				l[date] = day
			}
			day[fileName] += count
		}
	}
}

// ActiveDayCount returns the number of distinct dates with at least one
// recorded open
func (l Ledger) ActiveDayCount() int {
	count := 0
	for _, files := range l {
		if len(files) > 0 {
			count++
		}
	}
	return count
}

// HasActivity reports whether any opens were recorded on date
func (l Ledger) HasActivity(date string) bool {
	return len(l[date]) > 0
}

// FilesActiveOn returns the per-file open counts for date. The result is
// a copy; mutating it does not touch the ledger.
func (l Ledger) FilesActiveOn(date string) map[string]int {
	out := make(map[string]int, len(l[date]))
	for fileName, count := range l[date] {
		out[fileName] = count
	}
	return out
}

// Dates returns every date with recorded activity in ascending order
func (l Ledger) Dates() []string {
	out := make([]string, 0, len(l))
	for date, files := range l {
		if len(files) > 0 {
			out = append(out, date)
		}
	}
	sort.Strings(out)
	return out
}

// Clone deep-copies the ledger
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for date, files := range l {
		day := make(map[string]int, len(files))
		for fileName, count := range files {
			day[fileName] = count
		}
		out[date] = day
	}
	return out
}

// OverallStats summarizes the registry and ledger for the stats panel
type OverallStats struct {
	FileCount       int
	TotalOpens      int
	ActiveDays      int
	AverageProgress int
}
