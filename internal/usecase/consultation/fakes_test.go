package consultation

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unidesk/consult-scheduler/internal/calendar"
	domain "github.com/unidesk/consult-scheduler/internal/domain/consultation"
	"github.com/unidesk/consult-scheduler/internal/models"
	"github.com/unidesk/consult-scheduler/internal/notify"
)

// ===============================
// Test fixture
// ===============================

// testEnv wires the use cases against in-memory fakes. calls records the
// side-effect order across the repository and the calendar stub, which
// is what the cancel ordering tests assert on.
type testEnv struct {
	repo       *fakeRepo
	store      *fakeStore
	queue      *fakeQueue
	api        *stubCalendarAPI
	apiErr     error
	dispatcher *notify.Dispatcher
	sync       *calendar.Synchronizer
	calls      *[]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	calls := &[]string{}
	env := &testEnv{
		repo:  newFakeRepo(calls),
		store: &fakeStore{},
		queue: &fakeQueue{},
		api:   newStubCalendarAPI(calls),
		calls: calls,
	}

	env.dispatcher = notify.NewDispatcher(env.store, env.queue, zap.NewNop())
	env.sync = calendar.NewSynchronizer(
		env.repo,
		func(ctx context.Context, professor *models.User) (calendar.API, error) {
			if env.apiErr != nil {
				return nil, env.apiErr
			}
			return env.api, nil
		},
		"UTC",
		zap.NewNop(),
	)

	env.seedParties()
	return env
}

func (e *testEnv) seedParties() {
	e.repo.users[1] = &models.User{ID: 1, Name: "Ana Souza", Email: "ana@university.edu", Role: models.RoleStudent}
	e.repo.users[2] = &models.User{ID: 2, Name: "Dr. Lima", Email: "lima@university.edu", Role: models.RoleProfessor}
	e.repo.profiles[2] = &models.ProfessorProfile{
		ID:                    1,
		UserID:                2,
		DefaultDuration:       30,
		MaxAdvanceBookingDays: 30,
		BufferMinutes:         15,
		AvailableDays: models.WeeklySlots{
			"monday":    {"09:00", "10:00", "11:00"},
			"wednesday": {"14:00", "15:00"},
		},
	}
}

func (e *testEnv) seedConsultation(cons *models.Consultation) {
	e.repo.consultations[cons.ID] = cons
}

// messageTypesFor returns the message types stored for one user.
func (e *testEnv) messageTypesFor(userID uint) []string {
	var types []string
	for _, n := range e.store.records {
		if n.UserID == userID {
			types = append(types, n.MessageType)
		}
	}
	return types
}

// ===============================
// Repository fake
// ===============================

type fakeRepo struct {
	users         map[uint]*models.User
	profiles      map[uint]*models.ProfessorProfile
	consultations map[uint]*models.Consultation

	nextID uint
	calls  *[]string
}

func newFakeRepo(calls *[]string) *fakeRepo {
	return &fakeRepo{
		users:         map[uint]*models.User{},
		profiles:      map[uint]*models.ProfessorProfile{},
		consultations: map[uint]*models.Consultation{},
		calls:         calls,
	}
}

func (r *fakeRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetProfessorProfile(ctx context.Context, userID uint) (*models.ProfessorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepo) GetConsultation(ctx context.Context, id uint) (*models.Consultation, error) {
	c, ok := r.consultations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepo) CreateConsultation(ctx context.Context, cons *models.Consultation) error {
	r.nextID++
	cons.ID = r.nextID
	copied := *cons
	r.consultations[cons.ID] = &copied
	return nil
}

func (r *fakeRepo) Mutate(
	ctx context.Context,
	id uint,
	fn func(cons *models.Consultation) error,
) (*models.Consultation, error) {
	*r.calls = append(*r.calls, "repo.Mutate")

	c, ok := r.consultations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepo) ListForProfessorOnDate(
	ctx context.Context,
	professorID uint,
	date string,
	statuses []string,
) ([]models.Consultation, error) {
	wanted := map[string]bool{}
	for _, s := range statuses {
		wanted[s] = true
	}

	var list []models.Consultation
	for _, c := range r.consultations {
		if c.ProfessorID == professorID && c.ScheduledDate == date && wanted[c.Status] {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *fakeRepo) ListForUser(
	ctx context.Context,
	userID uint,
	role string,
	status string,
) ([]models.Consultation, error) {
	var list []models.Consultation
	for _, c := range r.consultations {
		if role == models.RoleProfessor && c.ProfessorID != userID {
			continue
		}
		if role == models.RoleStudent && c.StudentID != userID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		list = append(list, *c)
	}
	return list, nil
}

func (r *fakeRepo) ListConfirmedOnDate(ctx context.Context, date string) ([]models.Consultation, error) {
	var list []models.Consultation
	for _, c := range r.consultations {
		if c.ScheduledDate == date && c.Status == string(domain.StatusConfirmed) {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (r *fakeRepo) ListConfirmedWithCalendarEvent(ctx context.Context) ([]models.Consultation, error) {
	var list []models.Consultation
	for _, c := range r.consultations {
		if c.Status == string(domain.StatusConfirmed) && c.CalendarEventID != "" {
			list = append(list, *c)
		}
	}
	return list, nil
}

// ===============================
// Notification fakes
// ===============================

type fakeStore struct {
	nextID  uint
	records []*models.Notification
}

func (s *fakeStore) Create(ctx context.Context, n *models.Notification) error {
	s.nextID++
	n.ID = s.nextID
	copied := *n
	s.records = append(s.records, &copied)
	return nil
}

func (s *fakeStore) GetOrCreate(ctx context.Context, n *models.Notification) (bool, error) {
	for _, rec := range s.records {
		if rec.UserID == n.UserID &&
			rec.ConsultationID != nil && n.ConsultationID != nil &&
			*rec.ConsultationID == *n.ConsultationID &&
			rec.MessageType == n.MessageType {
			*n = *rec
			return false, nil
		}
	}
	return true, s.Create(ctx, n)
}

func (s *fakeStore) Get(ctx context.Context, id uint) (*models.Notification, error) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) Update(ctx context.Context, n *models.Notification) error {
	for i, rec := range s.records {
		if rec.ID == n.ID {
			copied := *n
			s.records[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeQueue struct {
	tasks []string
}

func (q *fakeQueue) Enqueue(ctx context.Context, name string, payload any) error {
	if _, err := json.Marshal(payload); err != nil {
		return err
	}
	q.tasks = append(q.tasks, name)
	return nil
}

// ===============================
// Calendar stub
// ===============================

type stubCalendarAPI struct {
	insertID  string
	insertErr error
	deleteErr error

	inserted []*calendar.Event
	updated  map[string]*calendar.Event
	deleted  []string

	calls *[]string
}

func newStubCalendarAPI(calls *[]string) *stubCalendarAPI {
	return &stubCalendarAPI{
		updated: map[string]*calendar.Event{},
		calls:   calls,
	}
}

func (a *stubCalendarAPI) Insert(ctx context.Context, ev *calendar.Event) (string, error) {
	*a.calls = append(*a.calls, "calendar.Insert")
	if a.insertErr != nil {
		return "", a.insertErr
	}
	a.inserted = append(a.inserted, ev)
	return a.insertID, nil
}

func (a *stubCalendarAPI) Get(ctx context.Context, eventID string) (*calendar.Event, error) {
	return nil, calendar.ErrEventNotFound
}

func (a *stubCalendarAPI) Update(ctx context.Context, eventID string, ev *calendar.Event) error {
	*a.calls = append(*a.calls, "calendar.Update")
	a.updated[eventID] = ev
	return nil
}

func (a *stubCalendarAPI) Delete(ctx context.Context, eventID string) error {
	*a.calls = append(*a.calls, "calendar.Delete")
	if a.deleteErr != nil {
		return a.deleteErr
	}
	a.deleted = append(a.deleted, eventID)
	return nil
}
