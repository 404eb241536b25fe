package appointment

import (
	"context"

	domain "github.com/salonhub/salon-scheduler/internal/domain/schedule"
	"github.com/salonhub/salon-scheduler/internal/httperr"
)

// AppointmentSummary is the owner's dashboard breakdown: how many
// appointments sit in each status for the salon.
type AppointmentSummary struct {
	Pending    int64 `json:"pending"`
	Accepted   int64 `json:"accepted"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	NoShow     int64 `json:"no_show"`
	Rejected   int64 `json:"rejected"`
}

type GetAppointmentSummary struct {
	repo domain.Repository
}

func NewGetAppointmentSummary(repo domain.Repository) *GetAppointmentSummary {
	return &GetAppointmentSummary{repo: repo}
}

func (uc *GetAppointmentSummary) Execute(
	ctx context.Context,
	salonID uint,
) (*AppointmentSummary, error) {

	if _, err := uc.repo.GetSalonByID(ctx, salonID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}

	counts := map[domain.Status]*int64{}
	out := &AppointmentSummary{}

	counts[domain.StatusPending] = &out.Pending
	counts[domain.StatusAccepted] = &out.Accepted
	counts[domain.StatusInProgress] = &out.InProgress
	counts[domain.StatusCompleted] = &out.Completed
	counts[domain.StatusCancelled] = &out.Cancelled
	counts[domain.StatusNoShow] = &out.NoShow
	counts[domain.StatusRejected] = &out.Rejected

	for status, dst := range counts {
		n, err := uc.repo.CountAppointmentsByStatus(ctx, salonID, string(status))
		if err != nil {
			return nil, err
		}
		*dst = n
	}

	return out, nil
}
