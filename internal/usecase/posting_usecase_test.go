package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/internal/domain/category"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/user"
)

type postingFixture struct {
	uc         PostingUsecase
	postings   *mockPostingRepo
	companies  *mockCompanyRepo
	categories *mockCategoryRepo

	employerID uuid.UUID
	companyID  uuid.UUID
	categoryID uuid.UUID
}

func newPostingFixture() *postingFixture {
	f := &postingFixture{
		postings:   newMockPostingRepo(),
		companies:  newMockCompanyRepo(),
		categories: newMockCategoryRepo(),

		employerID: uuid.New(),
		companyID:  uuid.New(),
		categoryID: uuid.New(),
	}
	f.companies.byUserID[f.employerID] = companyWithID(f.companyID, f.employerID)
	f.categories.byID[f.categoryID] = category.Category{ID: f.categoryID, Name: "Software Development", Active: true}
	f.uc = NewPostingUsecase(f.postings, f.companies, f.categories, nil, nil)
	return f
}

func (f *postingFixture) validInput() PostingInput {
	return PostingInput{
		CategoryID:      f.categoryID.String(),
		Title:           "Backend Engineer",
		Description:     "Build and run services",
		Modality:        posting.ModalityRemote,
		ExperienceLevel: posting.LevelSenior,
	}
}

func TestCreatePosting_DefaultsToPendingApproval(t *testing.T) {
	f := newPostingFixture()

	d, err := f.uc.Create(context.Background(), f.employerID.String(), user.RoleEmployer, f.validInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != posting.StatusPendingApproval {
		t.Fatalf("expected pending_approval, got %s", d.Status)
	}
	if d.ApprovedByAdmin {
		t.Fatalf("expected no approval on create")
	}
	if d.CompanyID != f.companyID {
		t.Fatalf("expected posting bound to employer company")
	}
}

func TestCreatePosting_DraftStaysDraft(t *testing.T) {
	f := newPostingFixture()

	in := f.validInput()
	in.Draft = true
	d, err := f.uc.Create(context.Background(), f.employerID.String(), user.RoleEmployer, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != posting.StatusDraft {
		t.Fatalf("expected draft, got %s", d.Status)
	}
}

func TestCreatePosting_RequiresCompany(t *testing.T) {
	f := newPostingFixture()
	loneEmployer := uuid.New()

	_, err := f.uc.Create(context.Background(), loneEmployer.String(), user.RoleEmployer, f.validInput())
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreatePosting_InactiveCategoryRejected(t *testing.T) {
	f := newPostingFixture()
	c := f.categories.byID[f.categoryID]
	c.Active = false
	f.categories.byID[f.categoryID] = c

	_, err := f.uc.Create(context.Background(), f.employerID.String(), user.RoleEmployer, f.validInput())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePosting_SalaryRangeValidated(t *testing.T) {
	f := newPostingFixture()

	lo, hi := 90000.0, 50000.0
	in := f.validInput()
	in.SalaryMin = &lo
	in.SalaryMax = &hi
	_, err := f.uc.Create(context.Background(), f.employerID.String(), user.RoleEmployer, in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdatePosting_LivePostingLosesApproval(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:              pid,
		CompanyID:       f.companyID,
		CategoryID:      f.categoryID,
		Status:          posting.StatusActive,
		ApprovedByAdmin: true,
	}}

	d, err := f.uc.Update(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String(), f.validInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != posting.StatusPendingApproval {
		t.Fatalf("expected pending_approval after live edit, got %s", d.Status)
	}
	if d.ApprovedByAdmin || d.ApprovedAt != nil {
		t.Fatalf("expected approval cleared")
	}
}

func TestUpdatePosting_DraftKeepsStatus(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:         pid,
		CompanyID:  f.companyID,
		CategoryID: f.categoryID,
		Status:     posting.StatusDraft,
	}}

	d, err := f.uc.Update(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String(), f.validInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Status != posting.StatusDraft {
		t.Fatalf("expected draft preserved, got %s", d.Status)
	}
}

func TestChangePostingStatus_ActiveRequiresApproval(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:        pid,
		CompanyID: f.companyID,
		Status:    posting.StatusPaused,
	}}

	err := f.uc.ChangeStatus(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String(), posting.StatusActive)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestChangePostingStatus_ApprovalNotSettableDirectly(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:        pid,
		CompanyID: f.companyID,
		Status:    posting.StatusDraft,
	}}

	err := f.uc.ChangeStatus(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String(), posting.StatusPendingApproval)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChangePostingStatus_PauseApprovedPosting(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:              pid,
		CompanyID:       f.companyID,
		Status:          posting.StatusActive,
		ApprovedByAdmin: true,
	}}

	if err := f.uc.ChangeStatus(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String(), posting.StatusPaused); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.postings.statusChanges[pid] != posting.StatusPaused {
		t.Fatalf("expected paused write")
	}
}

func TestGetPosting_HiddenFromStrangers(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:        pid,
		CompanyID: f.companyID,
		Status:    posting.StatusPendingApproval,
	}}

	// Anonymous caller.
	if _, err := f.uc.Get(context.Background(), "", "", pid.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for anonymous, got %v", err)
	}

	// Owner still sees it.
	if _, err := f.uc.Get(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String()); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Admin sees it.
	if _, err := f.uc.Get(context.Background(), uuid.New().String(), user.RoleAdmin, pid.String()); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestGetPosting_CountsApplicantViewsOnly(t *testing.T) {
	f := newPostingFixture()

	pid := uuid.New()
	f.postings.byID[pid] = posting.Detail{Posting: posting.Posting{
		ID:              pid,
		CompanyID:       f.companyID,
		Status:          posting.StatusActive,
		ApprovedByAdmin: true,
	}}

	if _, err := f.uc.Get(context.Background(), "", "", pid.String()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.uc.Get(context.Background(), f.employerID.String(), user.RoleEmployer, pid.String()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.postings.views[pid] != 1 {
		t.Fatalf("expected 1 counted view, got %d", f.postings.views[pid])
	}
}
