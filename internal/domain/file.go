package domain

import "time"

// DateFormat is the day-granularity date layout used by the statistics
// ledger and FileRecord.LastOpened
const DateFormat = "2006-01-02"

// FileRecord is the canonical, project-independent record of a loaded
// document: its content and reading state. There is one record per unique
// file name no matter how many projects reference it.
type FileRecord struct {
	Name              string `json:"name"`
	Content           string `json:"content"`
	ReadProgress      int    `json:"readProgress"`
	OpenCount         int    `json:"openCount"`
	LastOpened        string `json:"lastOpened,omitempty"`
	HiddenFromSources bool   `json:"hiddenFromSources"`
}

// ClampProgress bounds a read-progress percentage to [0, 100]
func ClampProgress(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// FormatDate renders a time as a ledger date string
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Today returns the current ledger date string
func Today() string {
	return FormatDate(time.Now())
}
