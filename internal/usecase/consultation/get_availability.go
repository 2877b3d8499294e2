package consultation

import (
	"context"
	"time"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo     domain.Repository
	campusTZ string
}

func NewGetAvailability(repo domain.Repository, campusTZ string) *GetAvailability {
	return &GetAvailability{repo: repo, campusTZ: campusTZ}
}

// Execute returns the professor's advertised template slots for the
// date's weekday together with the occupied intervals from pending and
// confirmed bookings. Both sets are reported as-is; subtracting one
// from the other is the caller's policy.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.DayAvailability, error) {

	professor, err := uc.repo.GetUser(ctx, in.ProfessorID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.repo.GetProfessorProfile(ctx, in.ProfessorID)
	if err != nil {
		return nil, err
	}

	dayName := timezone.WeekdayName(in.Date)
	slots := profile.AvailableDays.ForDay(dayName)
	if slots == nil {
		slots = []string{}
	}

	date := in.Date.Format(timezone.DateLayout)

	existing, err := uc.repo.ListForProfessorOnDate(
		ctx,
		in.ProfessorID,
		date,
		[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
	)
	if err != nil {
		return nil, err
	}

	booked := make([]domain.BookedSlot, 0, len(existing))
	for _, cons := range existing {
		start, err := timezone.Combine(date, cons.ScheduledTime, uc.campusTZ)
		if err != nil {
			continue
		}

		// Buffer is applied after the booking only: the occupied
		// interval is [start, start+duration+buffer).
		end := start.Add(time.Duration(cons.Duration+profile.BufferMinutes) * time.Minute)

		booked = append(booked, domain.BookedSlot{
			Start: cons.ScheduledTime,
			End:   end.Format(timezone.TimeLayout),
		})
	}

	return &domain.DayAvailability{
		ProfessorID:     professor.ID,
		ProfessorName:   professor.Name,
		Date:            date,
		AvailableSlots:  slots,
		BookedSlots:     booked,
		DefaultDuration: profile.DefaultDuration,
		BufferMinutes:   profile.BufferMinutes,
	}, nil
}
