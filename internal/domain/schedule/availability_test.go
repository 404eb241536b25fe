package schedule

import (
	"testing"
	"time"
)

var testDay = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

func mustInterval(t *testing.T, startLabel, endLabel string) Interval {
	t.Helper()

	start, err := CombineDateTime(testDay, startLabel, time.UTC)
	if err != nil {
		t.Fatalf("bad start label %s: %v", startLabel, err)
	}
	end, err := CombineDateTime(testDay, endLabel, time.UTC)
	if err != nil {
		t.Fatalf("bad end label %s: %v", endLabel, err)
	}
	return Interval{Start: start, End: end}
}

func TestBlocksNeeded(t *testing.T) {
	cases := []struct {
		duration, interval, want int
	}{
		{30, 30, 1},
		{60, 30, 2},
		{45, 30, 2}, // partial block rounds up
		{90, 30, 3},
		{15, 30, 1},
		{30, 15, 2},
		{0, 30, 0},
		{60, 0, 0},
	}

	for _, tc := range cases {
		if got := BlocksNeeded(tc.duration, tc.interval); got != tc.want {
			t.Fatalf("BlocksNeeded(%d, %d) = %d, want %d", tc.duration, tc.interval, got, tc.want)
		}
	}
}

func TestAvailableRunsEmptyDay(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "18:00", 30)

	runs := AvailableRuns(testDay, grid, 30, 2, nil, time.UTC, nil)

	// 18 slots, 2-block window sliding by one: 17 runs
	if len(runs) != 17 {
		t.Fatalf("expected 17 runs, got %d", len(runs))
	}
	if runs[0].Start != "09:00" || runs[0].End != "09:30" {
		t.Fatalf("first run wrong: %+v", runs[0])
	}

	// the last 60-minute run starts at 17:00 and covers [17:00 17:30];
	// 17:30 cannot anchor a run because it would spill past closing
	last := runs[len(runs)-1]
	if last.Start != "17:00" {
		t.Fatalf("last run must start at 17:00, got %s", last.Start)
	}
	if len(last.Covers) != 2 || last.Covers[0] != "17:00" || last.Covers[1] != "17:30" {
		t.Fatalf("last run covers wrong: %v", last.Covers)
	}
}

func TestAvailableRunsBusyIntervalBlocksOverlappingWindows(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "18:00", 30)
	busy := []Interval{mustInterval(t, "10:00", "11:00")}

	runs := AvailableRuns(testDay, grid, 30, 2, busy, time.UTC, nil)

	for _, r := range runs {
		for _, c := range r.Covers {
			if c == "10:00" || c == "10:30" {
				t.Fatalf("run %+v covers a busy slot", r)
			}
		}
	}

	// 09:30 anchors a run ending 10:30, which overlaps the booking
	for _, r := range runs {
		if r.Start == "09:30" {
			t.Fatalf("09:30 run overlaps the 10:00 booking and must be gone")
		}
	}

	// runs that merely touch the busy interval survive
	var found9, found11 bool
	for _, r := range runs {
		if r.Start == "09:00" {
			found9 = true
		}
		if r.Start == "11:00" {
			found11 = true
		}
	}
	if !found9 || !found11 {
		t.Fatalf("adjacent runs 09:00 and 11:00 must remain available")
	}
}

func TestAvailableRunsRespectsNotBefore(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "18:00", 30)

	cutoff, err := CombineDateTime(testDay, "12:00", time.UTC)
	if err != nil {
		t.Fatalf("cutoff: %v", err)
	}

	runs := AvailableRuns(testDay, grid, 30, 1, nil, time.UTC, &cutoff)

	if len(runs) == 0 {
		t.Fatalf("expected afternoon runs")
	}
	if runs[0].Start != "12:00" {
		t.Fatalf("first run must be at the cutoff, got %s", runs[0].Start)
	}
}

func TestAvailableRunsSingleBlockService(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "18:00", 30)

	runs := AvailableRuns(testDay, grid, 30, 1, nil, time.UTC, nil)

	if len(runs) != 18 {
		t.Fatalf("expected 18 single-slot runs, got %d", len(runs))
	}
	last := runs[len(runs)-1]
	if last.Start != "17:30" || last.End != "17:30" {
		t.Fatalf("last single run wrong: %+v", last)
	}
}

func TestAvailableRunsZeroBlocks(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "18:00", 30)

	if runs := AvailableRuns(testDay, grid, 30, 0, nil, time.UTC, nil); len(runs) != 0 {
		t.Fatalf("zero blocks must produce no runs, got %d", len(runs))
	}
}
