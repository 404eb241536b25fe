package schedule

import (
	"time"

	"github.com/salonhub/salon-scheduler/internal/models"
)

// BusyIntervals maps a day's appointments to their occupied time ranges.
// Terminal appointments are skipped (they free their slot-run the moment
// they become terminal), as is the appointment identified by excludeID
// (the one being rescheduled). When the candidate has a staff member
// assigned, other staff members' appointments do not compete for the slot;
// appointments without staff always compete.
func BusyIntervals(appts []models.Appointment, excludeID uint, staffID *uint) []Interval {
	out := make([]Interval, 0, len(appts))

	for _, ap := range appts {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if IsTerminal(Status(ap.Status)) {
			continue
		}
		if staffID != nil && ap.StaffID != nil && *ap.StaffID != *staffID {
			continue
		}
		out = append(out, Interval{Start: ap.StartAt, End: ap.EndAt})
	}

	return out
}

// HasConflict reports whether the candidate run [start, end) overlaps any
// competing non-terminal appointment. Used identically by the create and
// reschedule paths; reschedule passes its own ID as excludeID.
func HasConflict(appts []models.Appointment, start, end time.Time, excludeID uint, staffID *uint) bool {
	for _, b := range BusyIntervals(appts, excludeID, staffID) {
		if overlaps(b, start, end) {
			return true
		}
	}
	return false
}
