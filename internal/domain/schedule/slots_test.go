package schedule

import "testing"

func TestGenerateTimeSlotsDefaultDay(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "18:00", 30)

	if len(grid) != 18 {
		t.Fatalf("expected 18 slots, got %d", len(grid))
	}
	if grid[0] != "09:00" {
		t.Fatalf("expected first slot 09:00, got %s", grid[0])
	}
	if grid[len(grid)-1] != "17:30" {
		t.Fatalf("expected last slot 17:30, got %s", grid[len(grid)-1])
	}
}

func TestGenerateTimeSlotsSmallerInterval(t *testing.T) {
	grid := GenerateTimeSlots("09:00", "12:00", 15)

	if len(grid) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(grid))
	}
	if grid[1] != "09:15" {
		t.Fatalf("expected second slot 09:15, got %s", grid[1])
	}
}

func TestGenerateTimeSlotsClosingIsExclusive(t *testing.T) {
	grid := GenerateTimeSlots("17:00", "18:00", 30)

	for _, s := range grid {
		if s == "18:00" {
			t.Fatalf("closing time must not appear as a slot")
		}
	}
	if len(grid) != 2 {
		t.Fatalf("expected [17:00 17:30], got %v", grid)
	}
}

func TestGenerateTimeSlotsDegenerateInputs(t *testing.T) {
	cases := []struct {
		name     string
		open     string
		close    string
		interval int
	}{
		{"open equals close", "10:00", "10:00", 30},
		{"open after close", "18:00", "09:00", 30},
		{"zero interval", "09:00", "18:00", 0},
		{"negative interval", "09:00", "18:00", -15},
		{"garbage opening", "9am", "18:00", 30},
		{"garbage closing", "09:00", "late", 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := GenerateTimeSlots(tc.open, tc.close, tc.interval)
			if len(grid) != 0 {
				t.Fatalf("expected empty grid, got %v", grid)
			}
		})
	}
}

func TestIsValidLabel(t *testing.T) {
	if !IsValidLabel("09:30") {
		t.Fatalf("09:30 should be valid")
	}
	if IsValidLabel("9:30") {
		t.Fatalf("9:30 is not zero-padded")
	}
	if IsValidLabel("25:00") {
		t.Fatalf("25:00 is not a time")
	}
	if IsValidLabel("") {
		t.Fatalf("empty label must be invalid")
	}
}
