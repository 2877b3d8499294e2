package consultation

import (
	"context"

	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/httperr"
	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/notify"
	"github.com/unidesk/consult-scheduler/internal/timezone"
)

type BookInput struct {
	StudentID   uint
	ProfessorID uint
	Title       string
	Description string
	Date        string // "2006-01-02"
	Time        string // "15:04"
	Duration    int    // minutes; 0 means the professor's default
	MeetingLink string
	Location    string
}

type BookConsultation struct {
	repo       domain.Repository
	dispatcher *notify.Dispatcher
	campusTZ   string
}

func NewBookConsultation(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
	campusTZ string,
) *BookConsultation {
	return &BookConsultation{
		repo:       repo,
		dispatcher: dispatcher,
		campusTZ:   campusTZ,
	}
}

func (uc *BookConsultation) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Consultation, error) {

	professor, err := uc.repo.GetUser(ctx, in.ProfessorID)
	if err != nil || !professor.IsProfessor() {
		return nil, httperr.ErrBusiness("professor_not_found")
	}

	profile, err := uc.repo.GetProfessorProfile(ctx, in.ProfessorID)
	if err != nil {
		return nil, httperr.ErrBusiness("professor_not_found")
	}

	duration := in.Duration
	if duration == 0 {
		duration = profile.DefaultDuration
	}
	if err := domain.ValidateDuration(duration); err != nil {
		return nil, err
	}

	start, err := timezone.Combine(in.Date, in.Time, uc.campusTZ)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(uc.campusTZ)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	// Advance window is enforced here at booking time; availability
	// queries for later dates still answer.
	maxStart := now.AddDate(0, 0, profile.MaxAdvanceBookingDays)
	if start.After(maxStart) {
		return nil, httperr.ErrBusiness("advance_window_exceeded")
	}

	cons := models.Consultation{
		StudentID:     in.StudentID,
		ProfessorID:   in.ProfessorID,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledDate: in.Date,
		ScheduledTime: in.Time,
		Duration:      duration,
		Status:        string(domain.InitialStatus()),
		MeetingLink:   in.MeetingLink,
		Location:      in.Location,
	}

	if err := uc.repo.CreateConsultation(ctx, &cons); err != nil {
		return nil, err
	}

	uc.dispatcher.BookingCreated(ctx, &cons)

	return &cons, nil
}
