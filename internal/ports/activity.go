package ports

import "readspace/internal/domain"

// DayTotal is one day's aggregate open count
type DayTotal struct {
	Date  string
	Opens int
}

// ActivityIndex provides indexed access to open-event history for
// calendar queries. It mirrors the statistics ledger; the ledger stays
// the source of truth and the index can be rebuilt from it at any time.
type ActivityIndex interface {
	// Lifecycle
	Open(dataDir string) error
	Close() error

	// Rebuild replaces the index contents with the given ledger.
	Rebuild(ledger domain.Ledger) error

	// RecordOpen appends one open event for fileName on date.
	RecordOpen(date, fileName string) error

	// ActiveDates returns dates with at least one open in [from, to],
	// inclusive, in ascending order.
	ActiveDates(from, to string) ([]string, error)

	// TotalsFor returns per-file open counts for one date.
	TotalsFor(date string) (map[string]int, error)

	// DayTotals returns aggregate opens per day in [from, to], ascending.
	DayTotals(from, to string) ([]DayTotal, error)
}
