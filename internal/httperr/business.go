package httperr

import "errors"

// Business error codes raised by the scheduling core. The HTTP layer maps
// each code to a transport status; the codes themselves never change once
// clients depend on them.
const (
	CodeSalonNotFound       = "salon_not_found"
	CodeServiceNotFound     = "service_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeStaffNotFound       = "staff_not_found"
	CodeInvalidRequest      = "invalid_request"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidService      = "invalid_service"
	CodePastDate            = "past_date"
	CodeAdvanceWindow       = "advance_window_exceeded"
	CodeTooSoon             = "too_soon"
	CodeSameDayDisabled     = "same_day_disabled"
	CodeSalonClosed         = "salon_closed"
	CodeInvalidSlot         = "invalid_slot"
	CodeTimeConflict        = "time_conflict"
	CodeInvalidState        = "invalid_state"
	CodeCancellationWindow  = "cancellation_window_passed"
	CodeNotAllowed          = "not_allowed"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code of a business error, or "" for other errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
