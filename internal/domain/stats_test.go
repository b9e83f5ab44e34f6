package domain

import "testing"

func TestLedgerRecordOpen(t *testing.T) {
	ledger := NewLedger()

	ledger.RecordOpen("2026-09-01", "a.md")
	ledger.RecordOpen("2026-09-01", "a.md")
	ledger.RecordOpen("2026-09-01", "b.md")
	ledger.RecordOpen("2026-08-31", "a.md")

	if ledger["2026-09-01"]["a.md"] != 2 {
		t.Errorf("expected 2 opens, got %d", ledger["2026-09-01"]["a.md"])
	}
	if ledger.ActiveDayCount() != 2 {
		t.Errorf("expected 2 active days, got %d", ledger.ActiveDayCount())
	}
	if !ledger.HasActivity("2026-08-31") {
		t.Error("expected activity on 2026-08-31")
	}
	if ledger.HasActivity("2026-01-01") {
		t.Error("expected no activity on 2026-01-01")
	}
}

func TestLedgerMergeFrom(t *testing.T) {
	ledger := Ledger{
		"2026-09-01": {"a.md": 2},
	}
	other := Ledger{
		"2026-09-01": {"a.md": 3, "b.md": 1},
		"2026-08-30": {"c.md": 5},
	}

	ledger.MergeFrom(other)

	if ledger["2026-09-01"]["a.md"] != 5 {
		t.Errorf("expected additive merge to 5, got %d", ledger["2026-09-01"]["a.md"])
	}
	if ledger["2026-09-01"]["b.md"] != 1 {
		t.Errorf("expected 1, got %d", ledger["2026-09-01"]["b.md"])
	}
	if ledger["2026-08-30"]["c.md"] != 5 {
		t.Errorf("expected new date merged, got %d", ledger["2026-08-30"]["c.md"])
	}
}

func TestLedgerFilesActiveOn(t *testing.T) {
	ledger := Ledger{"2026-09-01": {"a.md": 2}}

	active := ledger.FilesActiveOn("2026-09-01")
	if active["a.md"] != 2 {
		t.Fatalf("expected 2, got %d", active["a.md"])
	}

	active["a.md"] = 99
	if ledger["2026-09-01"]["a.md"] != 2 {
		t.Error("FilesActiveOn must return a copy")
	}

	if got := ledger.FilesActiveOn("2026-01-01"); len(got) != 0 {
		t.Errorf("expected empty map for quiet day, got %v", got)
	}
}

func TestLedgerDates(t *testing.T) {
	ledger := Ledger{
		"2026-09-01": {"a.md": 1},
		"2026-08-30": {"b.md": 1},
		"2026-08-31": {},
	}

	dates := ledger.Dates()
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %v", dates)
	}
	if dates[0] != "2026-08-30" || dates[1] != "2026-09-01" {
		t.Errorf("expected ascending order, got %v", dates)
	}
}
