package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
	"github.com/salonhub/salon-scheduler/internal/middleware"
	"github.com/salonhub/salon-scheduler/internal/models"
)

func actorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.MustGet(middleware.ContextUserID).(uint),
		Role:   domain.Role(c.GetString(middleware.ContextUserRole)),
	}
}

// salonForOwner resolves the salon an owner manages. Owners have exactly
// one salon.
func salonForOwner(db *gorm.DB, ownerID uint) (*models.Salon, error) {
	var salon models.Salon
	if err := db.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// mapBusinessError translates a scheduling-core error into a transport
// status. Unknown errors become 500s without leaking internals.
func mapBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)

	switch code {
	case httperr.CodeSalonNotFound,
		httperr.CodeServiceNotFound,
		httperr.CodeAppointmentNotFound,
		httperr.CodeStaffNotFound:
		httperr.NotFound(c, code, "Resource not found.")

	case httperr.CodeTimeConflict:
		httperr.Conflict(c, code, "The requested slot is no longer available.")

	case httperr.CodeNotAllowed:
		httperr.Forbidden(c, code, "You are not allowed to perform this action.")

	case httperr.CodeCancellationWindow:
		httperr.Forbidden(c, code, "The cancellation window for this appointment has passed.")

	case httperr.CodePastDate,
		httperr.CodeAdvanceWindow,
		httperr.CodeTooSoon,
		httperr.CodeSameDayDisabled,
		httperr.CodeSalonClosed,
		httperr.CodeInvalidSlot,
		httperr.CodeInvalidDate,
		httperr.CodeInvalidService,
		httperr.CodeInvalidState,
		httperr.CodeInvalidRequest:
		httperr.BadRequest(c, code, "The request violates the salon's booking rules.")

	default:
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Resource not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}
