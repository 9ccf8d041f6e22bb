package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/profile"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"
)

var (
	ErrProfileRequired     = errors.New("applicant profile required")
	ErrAlreadyApplied      = errors.New("already applied to this posting")
	ErrPostingNotAvailable = errors.New("posting is not accepting applications")
	ErrPostingExpired      = errors.New("posting has expired")
	ErrWithdrawalBlocked   = errors.New("application can no longer be withdrawn")
)

// ApplicationNotifier pushes application events to connected clients. Nil is
// a valid notifier.
type ApplicationNotifier interface {
	ApplicationReceived(d application.Detail)
	ApplicationStatusChanged(d application.Detail)
}

type ApplyInput struct {
	PostingID   string
	CoverLetter *string
	// CVURL overrides the profile CV snapshot when set.
	CVURL *string
}

type ApplicationListInput struct {
	Statuses []string
	MinScore *int
	DateFrom *time.Time
	DateTo   *time.Time
	Order    string
	Page     pagination.Params
}

type ApplicationPage struct {
	Applications []application.Detail `json:"applications"`
	Meta         pagination.Meta      `json:"pagination"`
}

// Eligibility is the answer to "can this user apply to this posting".
type Eligibility struct {
	CanApply bool   `json:"can_apply"`
	Reason   string `json:"reason,omitempty"`
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, userID string, role user.Role, in ApplyInput) (application.Detail, error)
	CanApply(ctx context.Context, userID string, postingID string) (Eligibility, error)
	Mine(ctx context.Context, userID string, page pagination.Params) (ApplicationPage, error)
	ListByPosting(ctx context.Context, userID string, role user.Role, postingID string, in ApplicationListInput) (ApplicationPage, error)
	Get(ctx context.Context, userID string, role user.Role, id string) (application.Detail, error)
	ChangeStatus(ctx context.Context, userID string, role user.Role, id string, status application.Status, notes *string) (application.Detail, error)
	UpdateNotes(ctx context.Context, userID string, role user.Role, id string, notes string) (application.Detail, error)
	Withdraw(ctx context.Context, userID string, id string) (application.Detail, error)
	PostingStats(ctx context.Context, userID string, role user.Role, postingID string) (application.PostingStats, error)
	MyStats(ctx context.Context, userID string) (application.PostingStats, error)
	GeneralStats(ctx context.Context) (application.GeneralStats, error)
}

type applicationUsecase struct {
	applications repository.ApplicationRepository
	postings     repository.PostingRepository
	profiles     repository.ProfileRepository
	companies    repository.CompanyRepository
	notifier     ApplicationNotifier
	logger       *log.Logger

	now func() time.Time
}

func NewApplicationUsecase(
	applications repository.ApplicationRepository,
	postings repository.PostingRepository,
	profiles repository.ProfileRepository,
	companies repository.CompanyRepository,
	notifier ApplicationNotifier,
	logger *log.Logger,
) ApplicationUsecase {
	return &applicationUsecase{
		applications: applications,
		postings:     postings,
		profiles:     profiles,
		companies:    companies,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *applicationUsecase) Apply(ctx context.Context, userID string, role user.Role, in ApplyInput) (application.Detail, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return application.Detail{}, ErrUnauthorized
	}
	if role != user.RoleApplicant {
		return application.Detail{}, ErrForbidden
	}
	pid, err := parseUUID(in.PostingID)
	if err != nil {
		return application.Detail{}, ErrInvalidInput
	}

	prof, err := u.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Detail{}, ErrProfileRequired
		}
		return application.Detail{}, ErrInternal
	}

	target, err := u.checkEligibility(ctx, pid, prof.ID)
	if err != nil {
		return application.Detail{}, err
	}

	cvURL := prof.CVURL
	if v := trimPtr(in.CVURL); v != nil {
		cvURL = v
	}

	a := application.Application{
		ID:          uuid.New(),
		PostingID:   pid,
		ProfileID:   prof.ID,
		Status:      application.StatusPending,
		CoverLetter: trimPtr(in.CoverLetter),
		CVURL:       cvURL,
	}
	if err := u.applications.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return application.Detail{}, ErrAlreadyApplied
		}
		return application.Detail{}, ErrInternal
	}

	// Scoring failures never fail the submission; the application simply
	// carries no score until recomputed.
	score := matching.Score(matching.Factors{
		ApplicantLevel: prof.ExperienceLevel,
		RequiredLevel:  target.ExperienceLevel,
		ExpectedSalary: prof.ExpectedSalary,
		SalaryMax:      target.SalaryMax,
		Modality:       target.Modality,
	})
	if err := u.applications.UpdateScore(ctx, a.ID, score); err != nil && u.logger != nil {
		u.logger.Printf("[Applications] score write failed id=%s: %v", a.ID, err)
	}

	d, err := u.applications.GetByID(ctx, a.ID)
	if err != nil {
		return application.Detail{}, ErrInternal
	}
	if u.notifier != nil {
		u.notifier.ApplicationReceived(d)
	}
	return d, nil
}

func (u *applicationUsecase) CanApply(ctx context.Context, userID string, postingID string) (Eligibility, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return Eligibility{}, ErrUnauthorized
	}
	pid, err := parseUUID(postingID)
	if err != nil {
		return Eligibility{}, ErrInvalidInput
	}

	prof, err := u.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Eligibility{Reason: "profile required"}, nil
		}
		return Eligibility{}, ErrInternal
	}

	if _, err := u.checkEligibility(ctx, pid, prof.ID); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyApplied):
			return Eligibility{Reason: "already applied"}, nil
		case errors.Is(err, ErrNotFound):
			return Eligibility{Reason: "posting not found"}, nil
		case errors.Is(err, ErrPostingNotAvailable):
			return Eligibility{Reason: "posting not available"}, nil
		case errors.Is(err, ErrPostingExpired):
			return Eligibility{Reason: "posting expired"}, nil
		default:
			return Eligibility{}, ErrInternal
		}
	}
	return Eligibility{CanApply: true}, nil
}

// checkEligibility applies the rejection checks in a fixed order so callers
// always report the same reason for the same posting state.
func (u *applicationUsecase) checkEligibility(ctx context.Context, postingID, profileID uuid.UUID) (posting.Detail, error) {
	applied, err := u.applications.Exists(ctx, postingID, profileID)
	if err != nil {
		return posting.Detail{}, ErrInternal
	}
	if applied {
		return posting.Detail{}, ErrAlreadyApplied
	}

	target, err := u.postings.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return posting.Detail{}, ErrNotFound
		}
		return posting.Detail{}, ErrInternal
	}
	if !target.PubliclyVisible() {
		return posting.Detail{}, ErrPostingNotAvailable
	}
	if target.ExpiresAt != nil && target.ExpiresAt.Before(u.now()) {
		return posting.Detail{}, ErrPostingExpired
	}
	return target, nil
}

func (u *applicationUsecase) Mine(ctx context.Context, userID string, page pagination.Params) (ApplicationPage, error) {
	prof, err := u.profileOf(ctx, userID)
	if err != nil {
		return ApplicationPage{}, err
	}
	p := pagination.Normalize(page.Page, page.Limit)
	out, total, err := u.applications.ListByProfile(ctx, prof.ID, p.Limit, p.Offset())
	if err != nil {
		return ApplicationPage{}, ErrInternal
	}
	return ApplicationPage{Applications: out, Meta: pagination.NewMeta(p, total)}, nil
}

func (u *applicationUsecase) ListByPosting(ctx context.Context, userID string, role user.Role, postingID string, in ApplicationListInput) (ApplicationPage, error) {
	pid, err := parseUUID(postingID)
	if err != nil {
		return ApplicationPage{}, ErrInvalidInput
	}
	for _, s := range in.Statuses {
		if !application.Status(s).Valid() {
			return ApplicationPage{}, ErrInvalidInput
		}
	}

	target, err := u.postings.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ApplicationPage{}, ErrNotFound
		}
		return ApplicationPage{}, ErrInternal
	}
	if err := u.authorizePostingOwner(ctx, userID, role, target.CompanyID); err != nil {
		return ApplicationPage{}, err
	}

	p := pagination.Normalize(in.Page.Page, in.Page.Limit)
	f := repository.ApplicationListFilter{
		Statuses: in.Statuses,
		MinScore: in.MinScore,
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Order:    strings.TrimSpace(in.Order),
		Limit:    p.Limit,
		Offset:   p.Offset(),
	}
	out, total, err := u.applications.ListByPosting(ctx, pid, f)
	if err != nil {
		return ApplicationPage{}, ErrInternal
	}
	return ApplicationPage{Applications: out, Meta: pagination.NewMeta(p, total)}, nil
}

func (u *applicationUsecase) Get(ctx context.Context, userID string, role user.Role, id string) (application.Detail, error) {
	aid, err := parseUUID(id)
	if err != nil {
		return application.Detail{}, ErrInvalidInput
	}
	d, err := u.applications.GetByID(ctx, aid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Detail{}, ErrNotFound
		}
		return application.Detail{}, ErrInternal
	}
	if err := u.authorizeApplicationAccess(ctx, userID, role, d); err != nil {
		return application.Detail{}, err
	}
	return d, nil
}

func (u *applicationUsecase) ChangeStatus(ctx context.Context, userID string, role user.Role, id string, status application.Status, notes *string) (application.Detail, error) {
	if !status.Valid() {
		return application.Detail{}, ErrInvalidInput
	}
	aid, err := parseUUID(id)
	if err != nil {
		return application.Detail{}, ErrInvalidInput
	}
	d, err := u.applications.GetByID(ctx, aid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Detail{}, ErrNotFound
		}
		return application.Detail{}, ErrInternal
	}
	if err := u.authorizePostingOwner(ctx, userID, role, d.CompanyID); err != nil {
		return application.Detail{}, err
	}

	if err := u.applications.UpdateStatus(ctx, aid, status, trimPtr(notes)); err != nil {
		return application.Detail{}, ErrInternal
	}

	updated, err := u.applications.GetByID(ctx, aid)
	if err != nil {
		return application.Detail{}, ErrInternal
	}
	if u.notifier != nil {
		u.notifier.ApplicationStatusChanged(updated)
	}
	return updated, nil
}

func (u *applicationUsecase) UpdateNotes(ctx context.Context, userID string, role user.Role, id string, notes string) (application.Detail, error) {
	aid, err := parseUUID(id)
	if err != nil {
		return application.Detail{}, ErrInvalidInput
	}
	d, err := u.applications.GetByID(ctx, aid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Detail{}, ErrNotFound
		}
		return application.Detail{}, ErrInternal
	}
	if err := u.authorizePostingOwner(ctx, userID, role, d.CompanyID); err != nil {
		return application.Detail{}, err
	}
	if err := u.applications.UpdateNotes(ctx, aid, strings.TrimSpace(notes)); err != nil {
		return application.Detail{}, ErrInternal
	}
	return u.applications.GetByID(ctx, aid)
}

// Withdraw records an applicant-initiated exit. Stored as a transition to
// rejected carrying a fixed note.
func (u *applicationUsecase) Withdraw(ctx context.Context, userID string, id string) (application.Detail, error) {
	aid, err := parseUUID(id)
	if err != nil {
		return application.Detail{}, ErrInvalidInput
	}
	prof, err := u.profileOf(ctx, userID)
	if err != nil {
		return application.Detail{}, err
	}

	d, err := u.applications.GetByID(ctx, aid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.Detail{}, ErrNotFound
		}
		return application.Detail{}, ErrInternal
	}
	if d.ProfileID != prof.ID {
		return application.Detail{}, ErrForbidden
	}
	if d.Status.WithdrawalBlocked() {
		return application.Detail{}, ErrWithdrawalBlocked
	}

	note := application.WithdrawnNote
	if err := u.applications.UpdateStatus(ctx, aid, application.StatusRejected, &note); err != nil {
		return application.Detail{}, ErrInternal
	}

	updated, err := u.applications.GetByID(ctx, aid)
	if err != nil {
		return application.Detail{}, ErrInternal
	}
	if u.notifier != nil {
		u.notifier.ApplicationStatusChanged(updated)
	}
	return updated, nil
}

func (u *applicationUsecase) PostingStats(ctx context.Context, userID string, role user.Role, postingID string) (application.PostingStats, error) {
	pid, err := parseUUID(postingID)
	if err != nil {
		return application.PostingStats{}, ErrInvalidInput
	}
	target, err := u.postings.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.PostingStats{}, ErrNotFound
		}
		return application.PostingStats{}, ErrInternal
	}
	if err := u.authorizePostingOwner(ctx, userID, role, target.CompanyID); err != nil {
		return application.PostingStats{}, err
	}
	stats, err := u.applications.PostingStats(ctx, pid)
	if err != nil {
		return application.PostingStats{}, ErrInternal
	}
	return stats, nil
}

func (u *applicationUsecase) MyStats(ctx context.Context, userID string) (application.PostingStats, error) {
	prof, err := u.profileOf(ctx, userID)
	if err != nil {
		return application.PostingStats{}, err
	}
	stats, err := u.applications.ProfileStats(ctx, prof.ID)
	if err != nil {
		return application.PostingStats{}, ErrInternal
	}
	return stats, nil
}

func (u *applicationUsecase) GeneralStats(ctx context.Context) (application.GeneralStats, error) {
	stats, err := u.applications.GeneralStats(ctx)
	if err != nil {
		return application.GeneralStats{}, ErrInternal
	}
	return stats, nil
}

func (u *applicationUsecase) profileOf(ctx context.Context, userID string) (profile.Profile, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return profile.Profile{}, ErrUnauthorized
	}
	prof, err := u.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.Profile{}, ErrProfileRequired
		}
		return profile.Profile{}, ErrInternal
	}
	return prof, nil
}

func (u *applicationUsecase) authorizePostingOwner(ctx context.Context, userID string, role user.Role, companyID uuid.UUID) error {
	if role == user.RoleAdmin {
		return nil
	}
	if role != user.RoleEmployer {
		return ErrForbidden
	}
	uid, err := parseUUID(userID)
	if err != nil {
		return ErrUnauthorized
	}
	comp, err := u.companies.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return ErrInternal
	}
	if comp.ID != companyID {
		return ErrForbidden
	}
	return nil
}

// authorizeApplicationAccess lets the owning applicant, the posting's
// employer, or an admin read an application.
func (u *applicationUsecase) authorizeApplicationAccess(ctx context.Context, userID string, role user.Role, d application.Detail) error {
	switch role {
	case user.RoleAdmin:
		return nil
	case user.RoleApplicant:
		prof, err := u.profileOf(ctx, userID)
		if err != nil {
			return ErrForbidden
		}
		if prof.ID != d.ProfileID {
			return ErrForbidden
		}
		return nil
	case user.RoleEmployer:
		return u.authorizePostingOwner(ctx, userID, role, d.CompanyID)
	default:
		return ErrForbidden
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
