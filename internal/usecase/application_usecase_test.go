package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/profile"
	"jobboard/internal/domain/user"
)

type applicationFixture struct {
	uc        ApplicationUsecase
	apps      *mockApplicationRepo
	postings  *mockPostingRepo
	profiles  *mockProfileRepo
	companies *mockCompanyRepo
	notifier  *recordedNotifier

	applicantID uuid.UUID
	profileID   uuid.UUID
	employerID  uuid.UUID
	companyID   uuid.UUID
	postingID   uuid.UUID
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		apps:      newMockApplicationRepo(),
		postings:  newMockPostingRepo(),
		profiles:  newMockProfileRepo(),
		companies: newMockCompanyRepo(),
		notifier:  &recordedNotifier{},

		applicantID: uuid.New(),
		profileID:   uuid.New(),
		employerID:  uuid.New(),
		companyID:   uuid.New(),
		postingID:   uuid.New(),
	}

	salary := 50000.0
	f.profiles.byUserID[f.applicantID] = profile.Profile{
		ID:              f.profileID,
		UserID:          f.applicantID,
		ExperienceLevel: posting.LevelSenior,
		ExpectedSalary:  &salary,
	}
	f.companies.byUserID[f.employerID] = companyWithID(f.companyID, f.employerID)

	max := 60000.0
	f.postings.byID[f.postingID] = posting.Detail{Posting: posting.Posting{
		ID:              f.postingID,
		CompanyID:       f.companyID,
		Status:          posting.StatusActive,
		ApprovedByAdmin: true,
		Modality:        posting.ModalityRemote,
		ExperienceLevel: posting.LevelSemiSenior,
		SalaryMax:       &max,
	}}

	f.uc = NewApplicationUsecase(f.apps, f.postings, f.profiles, f.companies, f.notifier, nil)
	return f
}

func TestApply_ComputesScoreAndNotifies(t *testing.T) {
	f := newApplicationFixture()

	d, err := f.uc.Apply(context.Background(), f.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", d.Status)
	}
	if d.MatchScore == nil || *d.MatchScore != 90 {
		t.Fatalf("expected score 90, got %v", d.MatchScore)
	}
	if len(f.notifier.received) != 1 {
		t.Fatalf("expected 1 received event, got %d", len(f.notifier.received))
	}
}

func TestApply_CVDefaultsToProfileAndOverrides(t *testing.T) {
	f := newApplicationFixture()
	profileCV := "https://cv.example/profile.pdf"
	p := f.profiles.byUserID[f.applicantID]
	p.CVURL = &profileCV
	f.profiles.byUserID[f.applicantID] = p

	d, err := f.uc.Apply(context.Background(), f.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.CVURL == nil || *d.CVURL != profileCV {
		t.Fatalf("expected profile CV snapshot, got %v", d.CVURL)
	}

	f2 := newApplicationFixture()
	p2 := f2.profiles.byUserID[f2.applicantID]
	p2.CVURL = &profileCV
	f2.profiles.byUserID[f2.applicantID] = p2

	override := "https://cv.example/tailored.pdf"
	d2, err := f2.uc.Apply(context.Background(), f2.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f2.postingID.String(),
		CVURL:     &override,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d2.CVURL == nil || *d2.CVURL != override {
		t.Fatalf("expected CV override, got %v", d2.CVURL)
	}

	blank := "   "
	f3 := newApplicationFixture()
	p3 := f3.profiles.byUserID[f3.applicantID]
	p3.CVURL = &profileCV
	f3.profiles.byUserID[f3.applicantID] = p3

	d3, err := f3.uc.Apply(context.Background(), f3.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f3.postingID.String(),
		CVURL:     &blank,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d3.CVURL == nil || *d3.CVURL != profileCV {
		t.Fatalf("blank override must fall back to the profile CV, got %v", d3.CVURL)
	}
}

func TestApply_RequiresProfile(t *testing.T) {
	f := newApplicationFixture()
	stranger := uuid.New()

	_, err := f.uc.Apply(context.Background(), stranger.String(), user.RoleApplicant, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if !errors.Is(err, ErrProfileRequired) {
		t.Fatalf("expected ErrProfileRequired, got %v", err)
	}
}

func TestApply_RejectsEmployers(t *testing.T) {
	f := newApplicationFixture()

	_, err := f.uc.Apply(context.Background(), f.employerID.String(), user.RoleEmployer, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApply_DuplicateReportsAlreadyApplied(t *testing.T) {
	f := newApplicationFixture()
	f.apps.markApplied(f.postingID, f.profileID)

	_, err := f.uc.Apply(context.Background(), f.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if len(f.apps.created) != 0 {
		t.Fatalf("expected no applications created")
	}
}

func TestApply_HiddenPostingNotAvailable(t *testing.T) {
	f := newApplicationFixture()
	d := f.postings.byID[f.postingID]
	d.ApprovedByAdmin = false
	f.postings.byID[f.postingID] = d

	_, err := f.uc.Apply(context.Background(), f.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if !errors.Is(err, ErrPostingNotAvailable) {
		t.Fatalf("expected ErrPostingNotAvailable, got %v", err)
	}
}

func TestApply_ExpiredPosting(t *testing.T) {
	f := newApplicationFixture()
	past := time.Now().Add(-24 * time.Hour)
	d := f.postings.byID[f.postingID]
	d.ExpiresAt = &past
	f.postings.byID[f.postingID] = d

	_, err := f.uc.Apply(context.Background(), f.applicantID.String(), user.RoleApplicant, ApplyInput{
		PostingID: f.postingID.String(),
	})
	if !errors.Is(err, ErrPostingExpired) {
		t.Fatalf("expected ErrPostingExpired, got %v", err)
	}
}

func TestCanApply_ReasonOrder(t *testing.T) {
	f := newApplicationFixture()

	// Already applied wins over every other condition.
	f.apps.markApplied(f.postingID, f.profileID)
	past := time.Now().Add(-time.Hour)
	d := f.postings.byID[f.postingID]
	d.ApprovedByAdmin = false
	d.ExpiresAt = &past
	f.postings.byID[f.postingID] = d

	elig, err := f.uc.CanApply(context.Background(), f.applicantID.String(), f.postingID.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if elig.CanApply || elig.Reason != "already applied" {
		t.Fatalf("expected already applied, got %+v", elig)
	}
}

func TestCanApply_OK(t *testing.T) {
	f := newApplicationFixture()

	elig, err := f.uc.CanApply(context.Background(), f.applicantID.String(), f.postingID.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !elig.CanApply || elig.Reason != "" {
		t.Fatalf("expected eligible, got %+v", elig)
	}
}

func TestChangeStatus_InvalidStateRejected(t *testing.T) {
	f := newApplicationFixture()
	appID := seedApplication(f, application.StatusPending)

	_, err := f.uc.ChangeStatus(context.Background(), f.employerID.String(), user.RoleEmployer, appID.String(), application.Status("ghosted"), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(f.apps.statusChanges) != 0 {
		t.Fatalf("expected no status writes")
	}
}

func TestChangeStatus_StampsAndNotifies(t *testing.T) {
	f := newApplicationFixture()
	appID := seedApplication(f, application.StatusPending)

	notes := "strong candidate"
	d, err := f.uc.ChangeStatus(context.Background(), f.employerID.String(), user.RoleEmployer, appID.String(), application.StatusInterview, &notes)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != application.StatusInterview {
		t.Fatalf("expected interview, got %s", d.Status)
	}
	if d.StatusChangedAt == nil {
		t.Fatalf("expected status_changed_at stamp")
	}
	if d.EmployerNotes == nil || *d.EmployerNotes != notes {
		t.Fatalf("expected notes persisted")
	}
	if len(f.notifier.statusChanged) != 1 {
		t.Fatalf("expected 1 status event, got %d", len(f.notifier.statusChanged))
	}
}

func TestChangeStatus_OtherCompanyForbidden(t *testing.T) {
	f := newApplicationFixture()
	appID := seedApplication(f, application.StatusPending)

	otherEmployer := uuid.New()
	f.companies.byUserID[otherEmployer] = companyWithID(uuid.New(), otherEmployer)

	_, err := f.uc.ChangeStatus(context.Background(), otherEmployer.String(), user.RoleEmployer, appID.String(), application.StatusInReview, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestWithdraw_TransitionsToRejectedWithNote(t *testing.T) {
	f := newApplicationFixture()
	appID := seedApplication(f, application.StatusShortlisted)

	d, err := f.uc.Withdraw(context.Background(), f.applicantID.String(), appID.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != application.StatusRejected {
		t.Fatalf("expected rejected, got %s", d.Status)
	}
	if d.EmployerNotes == nil || *d.EmployerNotes != application.WithdrawnNote {
		t.Fatalf("expected withdrawal note, got %v", d.EmployerNotes)
	}
}

func TestWithdraw_BlockedInInterviewAndAccepted(t *testing.T) {
	for _, st := range []application.Status{application.StatusInterview, application.StatusAccepted} {
		f := newApplicationFixture()
		appID := seedApplication(f, st)

		_, err := f.uc.Withdraw(context.Background(), f.applicantID.String(), appID.String())
		if !errors.Is(err, ErrWithdrawalBlocked) {
			t.Fatalf("status %s: expected ErrWithdrawalBlocked, got %v", st, err)
		}
		if len(f.apps.statusChanges) != 0 {
			t.Fatalf("status %s: expected no writes", st)
		}
	}
}

func TestWithdraw_OnlyOwner(t *testing.T) {
	f := newApplicationFixture()
	appID := seedApplication(f, application.StatusPending)

	otherApplicant := uuid.New()
	f.profiles.byUserID[otherApplicant] = profile.Profile{ID: uuid.New(), UserID: otherApplicant}

	_, err := f.uc.Withdraw(context.Background(), otherApplicant.String(), appID.String())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGet_ApplicantSeesOwnOnly(t *testing.T) {
	f := newApplicationFixture()
	appID := seedApplication(f, application.StatusPending)

	if _, err := f.uc.Get(context.Background(), f.applicantID.String(), user.RoleApplicant, appID.String()); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	otherApplicant := uuid.New()
	f.profiles.byUserID[otherApplicant] = profile.Profile{ID: uuid.New(), UserID: otherApplicant}
	if _, err := f.uc.Get(context.Background(), otherApplicant.String(), user.RoleApplicant, appID.String()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func seedApplication(f *applicationFixture, status application.Status) uuid.UUID {
	id := uuid.New()
	f.apps.byID[id] = application.Detail{
		Application: application.Application{
			ID:        id,
			PostingID: f.postingID,
			ProfileID: f.profileID,
			Status:    status,
		},
		CompanyID: f.companyID,
	}
	return id
}
