package sqlite

import (
	"testing"

	"readspace/internal/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx := NewIndex()
	if err := idx.Open(t.TempDir()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestRecordOpenAccumulates(t *testing.T) {
	idx := newTestIndex(t)

	for i := 0; i < 3; i++ {
		if err := idx.RecordOpen("2026-09-01", "notes.md"); err != nil {
			t.Fatalf("RecordOpen failed: %v", err)
		}
	}
	if err := idx.RecordOpen("2026-09-01", "other.md"); err != nil {
		t.Fatal(err)
	}

	totals, err := idx.TotalsFor("2026-09-01")
	if err != nil {
		t.Fatalf("TotalsFor failed: %v", err)
	}
	if totals["notes.md"] != 3 || totals["other.md"] != 1 {
		t.Errorf("unexpected totals: %v", totals)
	}
}

func TestActiveDatesRange(t *testing.T) {
	idx := newTestIndex(t)

	for _, date := range []string{"2026-08-30", "2026-09-01", "2026-09-15", "2026-10-01"} {
		if err := idx.RecordOpen(date, "notes.md"); err != nil {
			t.Fatal(err)
		}
	}

	dates, err := idx.ActiveDates("2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatalf("ActiveDates failed: %v", err)
	}
	want := []string{"2026-09-01", "2026-09-15"}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestRebuildReplacesContents(t *testing.T) {
	idx := newTestIndex(t)

	if err := idx.RecordOpen("2026-01-01", "stale.md"); err != nil {
		t.Fatal(err)
	}

	ledger := domain.NewLedger()
	ledger.RecordOpen("2026-09-01", "a.md")
	ledger.RecordOpen("2026-09-01", "a.md")
	ledger.RecordOpen("2026-09-02", "b.md")

	if err := idx.Rebuild(ledger); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	if totals, _ := idx.TotalsFor("2026-01-01"); len(totals) != 0 {
		t.Errorf("stale entries survived rebuild: %v", totals)
	}
	totals, err := idx.TotalsFor("2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	if totals["a.md"] != 2 {
		t.Errorf("count = %d, want 2", totals["a.md"])
	}
}

func TestDayTotals(t *testing.T) {
	idx := newTestIndex(t)

	opens := map[string][]string{
		"2026-09-01": {"a.md", "b.md", "a.md"},
		"2026-09-03": {"a.md"},
	}
	for date, files := range opens {
		for _, f := range files {
			if err := idx.RecordOpen(date, f); err != nil {
				t.Fatal(err)
			}
		}
	}

	totals, err := idx.DayTotals("2026-09-01", "2026-09-30")
	if err != nil {
		t.Fatalf("DayTotals failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("got %d days, want 2", len(totals))
	}
	if totals[0].Date != "2026-09-01" || totals[0].Opens != 3 {
		t.Errorf("day 0 = %+v", totals[0])
	}
	if totals[1].Date != "2026-09-03" || totals[1].Opens != 1 {
		t.Errorf("day 1 = %+v", totals[1])
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	idx := NewIndex()
	if err := idx.Open(dir); err != nil {
		t.Fatal(err)
	}
	if err := idx.RecordOpen("2026-09-01", "notes.md"); err != nil {
		t.Fatal(err)
	}
	if err := idx.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := NewIndex()
	if err := reopened.Open(dir); err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if reopened.NeedsFullRebuild() {
		t.Error("schema unchanged, rebuild should not be needed")
	}
	totals, err := reopened.TotalsFor("2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	if totals["notes.md"] != 1 {
		t.Errorf("count = %d, want 1", totals["notes.md"])
	}
}
