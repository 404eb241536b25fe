package schedule

import "time"

const hmLayout = "15:04"

// GenerateTimeSlots produces the ordered grid of "HH:MM" slot labels from
// opening (inclusive) up to closing (exclusive), stepping by intervalMin.
// Opening at or after closing, a bad label, or a non-positive interval
// yields an empty grid.
func GenerateTimeSlots(opening, closing string, intervalMin int) []string {
	slots := []string{}

	if intervalMin <= 0 {
		return slots
	}

	start, err := time.Parse(hmLayout, opening)
	if err != nil {
		return slots
	}
	end, err := time.Parse(hmLayout, closing)
	if err != nil {
		return slots
	}

	for cur := start; cur.Before(end); cur = cur.Add(time.Duration(intervalMin) * time.Minute) {
		slots = append(slots, cur.Format(hmLayout))
	}

	return slots
}

// IsValidLabel reports whether s is a well-formed zero-padded "HH:MM" label.
func IsValidLabel(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse(hmLayout, s)
	return err == nil
}
