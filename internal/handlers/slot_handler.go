package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/httpresp"
	usecase "github.com/salonhub/salon-scheduler/internal/usecase/appointment"
)

type SlotHandler struct {
	getAvailability *usecase.GetAvailability
}

func NewSlotHandler(getAvailability *usecase.GetAvailability) *SlotHandler {
	return &SlotHandler{getAvailability: getAvailability}
}

// GetAvailability answers GET /api/slots?salon_id=&service_id=&date=&staff_id=
// with the bookable runs for that day.
func (h *SlotHandler) GetAvailability(c *gin.Context) {
	salonID, err := strconv.ParseUint(c.Query("salon_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "salon_id is required.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "service_id is required.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "date is required (YYYY-MM-DD).")
		return
	}

	var staffID *uint
	if raw := c.Query("staff_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "staff_id must be numeric.")
			return
		}
		v := uint(id)
		staffID = &v
	}

	runs, err := h.getAvailability.Execute(c.Request.Context(), usecase.GetAvailabilityInput{
		SalonID:   uint(salonID),
		ServiceID: uint(serviceID),
		StaffID:   staffID,
		Date:      date,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.List(c, runs)
}
