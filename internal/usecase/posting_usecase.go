package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"
)

// SearchCache is the slice of the cache the posting search needs. A nil
// implementation is valid; lookups then always miss.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	postingSearchKeyPrefix = "postings:search:"
	postingSearchTTL       = 120 * time.Second
)

type PostingInput struct {
	CategoryID       string
	Title            string
	Description      string
	Requirements     *string
	Responsibilities *string
	Benefits         *string
	SalaryMin        *float64
	SalaryMax        *float64
	Currency         string
	Location         *string
	Modality         posting.Modality
	ContractType     string
	ExperienceLevel  posting.ExperienceLevel
	Vacancies        int
	ExpiresAt        *time.Time
	DesiredStartDate *time.Time
	Draft            bool
}

type PostingSearchInput struct {
	Search           string
	CategoryID       string
	Location         string
	Modalities       []string
	ContractTypes    []string
	ExperienceLevels []string
	SalaryMin        *float64
	SalaryMax        *float64
	PublishedWithin  int
	Order            string
	Page             pagination.Params
}

type PostingPage struct {
	Postings []posting.Detail `json:"postings"`
	Meta     pagination.Meta  `json:"pagination"`
}

type PostingUsecase interface {
	Create(ctx context.Context, userID string, role user.Role, in PostingInput) (posting.Detail, error)
	Update(ctx context.Context, userID string, role user.Role, id string, in PostingInput) (posting.Detail, error)
	ChangeStatus(ctx context.Context, userID string, role user.Role, id string, status posting.Status) error
	Approve(ctx context.Context, id string, approved bool) error
	Search(ctx context.Context, in PostingSearchInput) (PostingPage, error)
	Get(ctx context.Context, userID string, role user.Role, id string) (posting.Detail, error)
	Mine(ctx context.Context, userID string, page pagination.Params) (PostingPage, error)
	PendingApproval(ctx context.Context, page pagination.Params) (PostingPage, error)
	GeneralStats(ctx context.Context) (posting.GeneralStats, error)
}

type postingUsecase struct {
	postings   repository.PostingRepository
	companies  repository.CompanyRepository
	categories repository.CategoryRepository
	cache      SearchCache
	logger     *log.Logger
}

func NewPostingUsecase(
	postings repository.PostingRepository,
	companies repository.CompanyRepository,
	categories repository.CategoryRepository,
	cache SearchCache,
	logger *log.Logger,
) PostingUsecase {
	return &postingUsecase{
		postings:   postings,
		companies:  companies,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

func (u *postingUsecase) Create(ctx context.Context, userID string, role user.Role, in PostingInput) (posting.Detail, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return posting.Detail{}, ErrUnauthorized
	}
	if role != user.RoleEmployer {
		return posting.Detail{}, ErrForbidden
	}

	comp, err := u.companies.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return posting.Detail{}, ErrForbidden
		}
		return posting.Detail{}, ErrInternal
	}

	p, err := u.buildPosting(ctx, in)
	if err != nil {
		return posting.Detail{}, err
	}
	p.ID = uuid.New()
	p.CompanyID = comp.ID
	if in.Draft {
		p.Status = posting.StatusDraft
	} else {
		p.Status = posting.StatusPendingApproval
	}

	if err := u.postings.Create(ctx, p); err != nil {
		return posting.Detail{}, ErrInternal
	}
	u.invalidateSearch(ctx)

	return u.detail(ctx, p.ID)
}

// Update re-submits an already approved live posting for review: its approval
// is withdrawn and the status returns to pending_approval.
func (u *postingUsecase) Update(ctx context.Context, userID string, role user.Role, id string, in PostingInput) (posting.Detail, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return posting.Detail{}, ErrUnauthorized
	}
	pid, err := parseUUID(id)
	if err != nil {
		return posting.Detail{}, ErrInvalidInput
	}

	current, err := u.postings.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return posting.Detail{}, ErrNotFound
		}
		return posting.Detail{}, ErrInternal
	}
	if err := u.authorizeOwner(ctx, uid, role, current.CompanyID); err != nil {
		return posting.Detail{}, err
	}

	next, err := u.buildPosting(ctx, in)
	if err != nil {
		return posting.Detail{}, err
	}
	next.ID = current.ID
	next.CompanyID = current.CompanyID
	next.Status = current.Status
	next.ApprovedByAdmin = current.ApprovedByAdmin
	next.ApprovedAt = current.ApprovedAt
	next.PublishedAt = current.PublishedAt

	if current.PubliclyVisible() {
		next.Status = posting.StatusPendingApproval
		next.ApprovedByAdmin = false
		next.ApprovedAt = nil
	}

	if err := u.postings.Update(ctx, next); err != nil {
		return posting.Detail{}, ErrInternal
	}
	u.invalidateSearch(ctx)

	return u.detail(ctx, pid)
}

func (u *postingUsecase) ChangeStatus(ctx context.Context, userID string, role user.Role, id string, status posting.Status) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return ErrUnauthorized
	}
	pid, err := parseUUID(id)
	if err != nil {
		return ErrInvalidInput
	}
	// Employers manage the lifecycle; approval itself goes through Approve.
	switch status {
	case posting.StatusActive, posting.StatusPaused, posting.StatusClosed:
	default:
		return ErrInvalidInput
	}

	current, err := u.postings.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if err := u.authorizeOwner(ctx, uid, role, current.CompanyID); err != nil {
		return err
	}

	if status == posting.StatusActive && !current.ApprovedByAdmin {
		return ErrConflict
	}

	if err := u.postings.UpdateStatus(ctx, pid, status); err != nil {
		return ErrInternal
	}
	u.invalidateSearch(ctx)
	return nil
}

func (u *postingUsecase) Approve(ctx context.Context, id string, approved bool) error {
	pid, err := parseUUID(id)
	if err != nil {
		return ErrInvalidInput
	}
	if _, err := u.postings.GetByID(ctx, pid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if err := u.postings.Approve(ctx, pid, approved); err != nil {
		return ErrInternal
	}
	u.invalidateSearch(ctx)
	return nil
}

func (u *postingUsecase) Search(ctx context.Context, in PostingSearchInput) (PostingPage, error) {
	page := pagination.Normalize(in.Page.Page, in.Page.Limit)

	f := repository.PostingListFilter{
		Search:           strings.TrimSpace(in.Search),
		Location:         strings.TrimSpace(in.Location),
		Modalities:       in.Modalities,
		ContractTypes:    in.ContractTypes,
		ExperienceLevels: in.ExperienceLevels,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		PublishedWithin:  in.PublishedWithin,
		Order:            strings.TrimSpace(in.Order),
		Limit:            page.Limit,
		Offset:           page.Offset(),
	}
	if raw := strings.TrimSpace(in.CategoryID); raw != "" {
		cid, err := parseUUID(raw)
		if err != nil {
			return PostingPage{}, ErrInvalidInput
		}
		f.CategoryID = cid
	}
	for _, m := range in.Modalities {
		if !posting.Modality(m).Valid() {
			return PostingPage{}, ErrInvalidInput
		}
	}
	for _, lvl := range in.ExperienceLevels {
		if !posting.ExperienceLevel(lvl).Valid() {
			return PostingPage{}, ErrInvalidInput
		}
	}

	key := searchCacheKey(f)
	if u.cache != nil {
		var cached PostingPage
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, total, err := u.postings.List(ctx, f)
	if err != nil {
		return PostingPage{}, ErrInternal
	}
	result := PostingPage{Postings: out, Meta: pagination.NewMeta(page, total)}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, result, postingSearchTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Postings] search cache write failed: %v", err)
		}
	}
	return result, nil
}

// Get serves the public detail view. Postings that are not publicly visible
// are only shown to their owner and to admins; views are counted for
// anonymous and applicant reads only.
func (u *postingUsecase) Get(ctx context.Context, userID string, role user.Role, id string) (posting.Detail, error) {
	pid, err := parseUUID(id)
	if err != nil {
		return posting.Detail{}, ErrInvalidInput
	}
	d, err := u.postings.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return posting.Detail{}, ErrNotFound
		}
		return posting.Detail{}, ErrInternal
	}

	if !d.PubliclyVisible() {
		if role == user.RoleAdmin {
			return d, nil
		}
		uid, perr := parseUUID(userID)
		if perr != nil {
			return posting.Detail{}, ErrNotFound
		}
		comp, cerr := u.companies.GetByUserID(ctx, uid)
		if cerr != nil || comp.ID != d.CompanyID {
			return posting.Detail{}, ErrNotFound
		}
		return d, nil
	}

	if role != user.RoleAdmin && role != user.RoleEmployer {
		if err := u.postings.IncrementViews(ctx, pid); err == nil {
			d.Views++
		}
	}
	return d, nil
}

func (u *postingUsecase) Mine(ctx context.Context, userID string, page pagination.Params) (PostingPage, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return PostingPage{}, ErrUnauthorized
	}
	comp, err := u.companies.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PostingPage{}, ErrForbidden
		}
		return PostingPage{}, ErrInternal
	}

	p := pagination.Normalize(page.Page, page.Limit)
	out, total, err := u.postings.ListByCompany(ctx, comp.ID, p.Limit, p.Offset())
	if err != nil {
		return PostingPage{}, ErrInternal
	}
	return PostingPage{Postings: out, Meta: pagination.NewMeta(p, total)}, nil
}

func (u *postingUsecase) PendingApproval(ctx context.Context, page pagination.Params) (PostingPage, error) {
	p := pagination.Normalize(page.Page, page.Limit)
	f := repository.PostingListFilter{
		Status: string(posting.StatusPendingApproval),
		Order:  "date_asc",
		Limit:  p.Limit,
		Offset: p.Offset(),
	}
	out, total, err := u.postings.List(ctx, f)
	if err != nil {
		return PostingPage{}, ErrInternal
	}
	return PostingPage{Postings: out, Meta: pagination.NewMeta(p, total)}, nil
}

func (u *postingUsecase) GeneralStats(ctx context.Context) (posting.GeneralStats, error) {
	stats, err := u.postings.GeneralStats(ctx)
	if err != nil {
		return posting.GeneralStats{}, ErrInternal
	}
	return stats, nil
}

func (u *postingUsecase) buildPosting(ctx context.Context, in PostingInput) (posting.Posting, error) {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		return posting.Posting{}, ErrInvalidInput
	}
	if !in.Modality.Valid() || !in.ExperienceLevel.Valid() {
		return posting.Posting{}, ErrInvalidInput
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return posting.Posting{}, ErrInvalidInput
	}

	cid, err := parseUUID(in.CategoryID)
	if err != nil {
		return posting.Posting{}, ErrInvalidInput
	}
	cat, err := u.categories.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return posting.Posting{}, ErrInvalidInput
		}
		return posting.Posting{}, ErrInternal
	}
	if !cat.Active {
		return posting.Posting{}, ErrInvalidInput
	}

	vacancies := in.Vacancies
	if vacancies <= 0 {
		vacancies = 1
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}
	contract := strings.TrimSpace(in.ContractType)
	if contract == "" {
		contract = "full_time"
	}

	return posting.Posting{
		CategoryID:       cid,
		Title:            title,
		Description:      desc,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		Benefits:         in.Benefits,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		Currency:         currency,
		Location:         in.Location,
		Modality:         in.Modality,
		ContractType:     contract,
		ExperienceLevel:  in.ExperienceLevel,
		Vacancies:        vacancies,
		ExpiresAt:        in.ExpiresAt,
		DesiredStartDate: in.DesiredStartDate,
	}, nil
}

func (u *postingUsecase) authorizeOwner(ctx context.Context, uid uuid.UUID, role user.Role, companyID uuid.UUID) error {
	if role == user.RoleAdmin {
		return nil
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

func (u *postingUsecase) detail(ctx context.Context, id uuid.UUID) (posting.Detail, error) {
	d, err := u.postings.GetByID(ctx, id)
	if err != nil {
		return posting.Detail{}, ErrInternal
	}
	return d, nil
}

func (u *postingUsecase) invalidateSearch(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, postingSearchKeyPrefix+"*"); err != nil && u.logger != nil {
		u.logger.Printf("[Postings] search cache invalidation failed: %v", err)
	}
}

func searchCacheKey(f repository.PostingListFilter) string {
	b, err := json.Marshal(f)
	if err != nil {
		return postingSearchKeyPrefix + "raw"
	}
	sum := sha256.Sum256(b)
	return postingSearchKeyPrefix + hex.EncodeToString(sum[:16])
}
