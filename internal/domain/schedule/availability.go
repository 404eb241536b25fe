package schedule

import "time"

// SlotRun is a bookable window of consecutive grid slots: Start/End are the
// first and last labels, Covers every label the run occupies.
type SlotRun struct {
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Covers []string `json:"covers"`
}

// Interval is an occupied [Start, End) time range on a given day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// BlocksNeeded is how many grid slots a service occupies. Partial blocks
// always round up: a 45-minute service on a 30-minute grid takes 2 blocks.
func BlocksNeeded(durationMin, intervalMin int) int {
	if intervalMin <= 0 || durationMin <= 0 {
		return 0
	}
	return (durationMin + intervalMin - 1) / intervalMin
}

func overlaps(i Interval, start, end time.Time) bool {
	// half-open intervals: runs that merely touch do not overlap
	return i.Start.Before(end) && i.End.After(start)
}

// CombineDateTime anchors an "HH:MM" label on a calendar day.
func CombineDateTime(date time.Time, label string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(hmLayout, label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// AvailableRuns slides a blocksNeeded-wide window over the grid (by one
// slot at a time) and keeps every window that is not occupied by a busy
// interval and does not start before notBefore (the same-day minimum
// advance cutoff; nil when not applicable). Windows never extend past
// closing because the last window ends one interval after the last grid
// label it covers.
func AvailableRuns(
	date time.Time,
	grid []string,
	intervalMin int,
	blocksNeeded int,
	busy []Interval,
	loc *time.Location,
	notBefore *time.Time,
) []SlotRun {

	runs := []SlotRun{}
	if blocksNeeded <= 0 {
		return runs
	}

	for i := 0; i+blocksNeeded <= len(grid); i++ {
		covers := grid[i : i+blocksNeeded]

		start, err := CombineDateTime(date, covers[0], loc)
		if err != nil {
			continue
		}
		end := start.Add(time.Duration(blocksNeeded*intervalMin) * time.Minute)

		if notBefore != nil && start.Before(*notBefore) {
			continue
		}

		blocked := false
		for _, b := range busy {
			if overlaps(b, start, end) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		runs = append(runs, SlotRun{
			Start:  covers[0],
			End:    covers[len(covers)-1],
			Covers: append([]string(nil), covers...),
		})
	}

	return runs
}
