package notify

// Notification types stored with each event.
const (
	TypeCreated     = "appointment_created"
	TypeAccepted    = "appointment_accepted"
	TypeRejected    = "appointment_rejected"
	TypeCancelled   = "appointment_cancelled"
	TypeRescheduled = "appointment_rescheduled"
)

type Event struct {
	UserID        uint
	AppointmentID uint
	Type          string
	Message       string
}

// Notifier is the fire-and-forget sink the scheduling use cases write to.
// Delivery failures never propagate back into the appointment transition.
type Notifier interface {
	Dispatch(ev Event)
}
