package booking

import (
	"context"
	"time"

	domain "github.com/glamflow/salon-scheduler/internal/domain/booking"
	"github.com/glamflow/salon-scheduler/internal/httperr"
)

type AvailabilityInput struct {
	StaffID   uint
	ServiceID uint
	Date      time.Time
	Now       time.Time
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]string, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Available {
		return nil, httperr.ErrNotFound("service_unavailable")
	}

	staff, err := uc.repo.GetStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListBookedSlots(
		ctx,
		staff.ID,
		in.Date.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(
		staff.WeeklySchedule,
		in.Date,
		service.DurationMin,
		booked,
		in.Now,
	)
}
