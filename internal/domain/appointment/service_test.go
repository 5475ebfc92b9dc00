package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

type fakeRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (f *fakeRepo) Create(ctx context.Context, appt *Appointment) error {
	f.appointments[appt.ID] = appt
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeRepo) ListByAccount(ctx context.Context, accountType account.Type, accountID uuid.UUID, limit, offset int) ([]*Appointment, error) {
	result := []*Appointment{}
	for _, appt := range f.appointments {
		if (accountType == account.TypeDoctor && appt.DoctorID == accountID) ||
			(accountType == account.TypeUser && appt.UserID == accountID) {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != StatusScheduled {
		return nil, nil
	}
	appt.Status = StatusCancelled
	appt.CancelReason = sql.NullString{String: reason, Valid: reason != ""}
	return appt, nil
}

func (f *fakeRepo) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != StatusScheduled {
		return nil, nil
	}
	appt.Status = StatusCompleted
	return appt, nil
}

func (f *fakeRepo) CancelAllActiveFor(ctx context.Context, accountID uuid.UUID, accountType account.Type, reason string) (int64, error) {
	var n int64
	for _, appt := range f.appointments {
		owner := appt.UserID
		if accountType == account.TypeDoctor {
			owner = appt.DoctorID
		}
		if owner == accountID && appt.Status == StatusScheduled {
			appt.Status = StatusCancelled
			appt.CancelReason = sql.NullString{String: reason, Valid: reason != ""}
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) DeleteAllFor(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	for id, appt := range f.appointments {
		if appt.UserID == accountID || appt.DoctorID == accountID {
			delete(f.appointments, id)
			n++
		}
	}
	return n, nil
}

type fakeAccounts struct {
	doctors map[uuid.UUID]*account.Account
}

func (f *fakeAccounts) GetByTypeAndID(ctx context.Context, accountType account.Type, id uuid.UUID) (*account.Account, error) {
	if accountType != account.TypeDoctor {
		return nil, nil
	}
	return f.doctors[id], nil
}

func (f *fakeAccounts) Create(ctx context.Context, acct *account.Account) error { return nil }
func (f *fakeAccounts) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) List(ctx context.Context, filter *account.ListFilter) ([]*account.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) Count(ctx context.Context, filter *account.ListFilter) (int, error) {
	return 0, nil
}
func (f *fakeAccounts) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeAccounts) Ban(ctx context.Context, upd account.BanUpdate) (*account.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) Unban(ctx context.Context, accountType account.Type, id uuid.UUID) (*account.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) ConsumeUnbanAttempt(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeAccounts) SweepExpiredBans(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeAccounts) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeAccounts) {
	repo := newFakeRepo()
	accounts := &fakeAccounts{doctors: make(map[uuid.UUID]*account.Account)}
	return NewService(repo, accounts), repo, accounts
}

func addDoctor(accounts *fakeAccounts, banned, available bool) uuid.UUID {
	id := uuid.New()
	accounts.doctors[id] = &account.Account{
		ID:          id,
		Type:        account.TypeDoctor,
		IsBanned:    banned,
		IsAvailable: available,
	}
	return id
}

func TestBook(t *testing.T) {
	svc, repo, accounts := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	doctorID := addDoctor(accounts, false, true)

	appt, err := svc.Book(ctx, userID, &BookRequest{
		DoctorID:    doctorID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Notes:       "limping cat",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appt.Status != StatusScheduled {
		t.Fatalf("status = %q, want scheduled", appt.Status)
	}
	if repo.appointments[appt.ID] == nil {
		t.Fatal("appointment not persisted")
	}
}

func TestBookGuards(t *testing.T) {
	svc, _, accounts := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	future := time.Now().Add(time.Hour)

	_, err := svc.Book(ctx, userID, &BookRequest{DoctorID: addDoctor(accounts, false, true), ScheduledAt: time.Now().Add(-time.Hour)})
	if err != ErrScheduledInPast {
		t.Fatalf("past time err = %v, want ErrScheduledInPast", err)
	}

	_, err = svc.Book(ctx, userID, &BookRequest{DoctorID: uuid.New(), ScheduledAt: future})
	if err != ErrDoctorNotFound {
		t.Fatalf("unknown doctor err = %v, want ErrDoctorNotFound", err)
	}

	_, err = svc.Book(ctx, userID, &BookRequest{DoctorID: addDoctor(accounts, true, true), ScheduledAt: future})
	if err != ErrDoctorUnavailable {
		t.Fatalf("banned doctor err = %v, want ErrDoctorUnavailable", err)
	}

	_, err = svc.Book(ctx, userID, &BookRequest{DoctorID: addDoctor(accounts, false, false), ScheduledAt: future})
	if err != ErrDoctorUnavailable {
		t.Fatalf("unavailable doctor err = %v, want ErrDoctorUnavailable", err)
	}
}

func TestCancel(t *testing.T) {
	svc, _, accounts := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	doctorID := addDoctor(accounts, false, true)

	appt, err := svc.Book(ctx, userID, &BookRequest{DoctorID: doctorID, ScheduledAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	_, err = svc.Cancel(ctx, uuid.New(), appt.ID, "not mine")
	if err != ErrNotOwner {
		t.Fatalf("stranger cancel err = %v, want ErrNotOwner", err)
	}

	cancelled, err := svc.Cancel(ctx, doctorID, appt.ID, "emergency surgery")
	if err != nil {
		t.Fatalf("doctor cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	_, err = svc.Cancel(ctx, userID, appt.ID, "")
	if err != ErrAlreadyFinished {
		t.Fatalf("double cancel err = %v, want ErrAlreadyFinished", err)
	}

	_, err = svc.Cancel(ctx, userID, uuid.New(), "")
	if err != ErrAppointmentNotFound {
		t.Fatalf("missing err = %v, want ErrAppointmentNotFound", err)
	}
}

func TestComplete(t *testing.T) {
	svc, _, accounts := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	doctorID := addDoctor(accounts, false, true)

	appt, err := svc.Book(ctx, userID, &BookRequest{DoctorID: doctorID, ScheduledAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// only the doctor side may complete
	_, err = svc.Complete(ctx, userID, appt.ID)
	if err != ErrNotOwner {
		t.Fatalf("user complete err = %v, want ErrNotOwner", err)
	}

	completed, err := svc.Complete(ctx, doctorID, appt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Fatalf("status = %q, want completed", completed.Status)
	}

	_, err = svc.Complete(ctx, doctorID, appt.ID)
	if err != ErrAlreadyFinished {
		t.Fatalf("double complete err = %v, want ErrAlreadyFinished", err)
	}
}

func TestCancelAllActiveFor(t *testing.T) {
	svc, repo, accounts := newTestService()
	ctx := context.Background()
	doctorID := addDoctor(accounts, false, true)

	for i := 0; i < 3; i++ {
		if _, err := svc.Book(ctx, uuid.New(), &BookRequest{DoctorID: doctorID, ScheduledAt: time.Now().Add(time.Hour)}); err != nil {
			t.Fatalf("book: %v", err)
		}
	}

	n, err := repo.CancelAllActiveFor(ctx, doctorID, account.TypeDoctor, "Account banned: spam")
	if err != nil {
		t.Fatalf("cancel all: %v", err)
	}
	if n != 3 {
		t.Fatalf("cancelled = %d, want 3", n)
	}
	for _, appt := range repo.appointments {
		if appt.Status != StatusCancelled {
			t.Fatal("every scheduled appointment must be cancelled")
		}
	}

	// second pass finds nothing scheduled
	n, err = repo.CancelAllActiveFor(ctx, doctorID, account.TypeDoctor, "again")
	if err != nil {
		t.Fatalf("cancel all: %v", err)
	}
	if n != 0 {
		t.Fatalf("cancelled = %d, want 0", n)
	}
}
