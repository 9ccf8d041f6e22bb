package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"
)

type CompanyInput struct {
	Name        string
	TaxID       *string
	Description *string
	Sector      *string
	Location    *string
	Website     *string
	LogoURL     *string
	CompanySize string
	Phone       *string
}

type CompanyListInput struct {
	Sector   string
	Location string
	Verified *bool
	Page     pagination.Params
}

type CompanyUsecase interface {
	Create(ctx context.Context, userID string, role user.Role, in CompanyInput) (company.Company, error)
	Mine(ctx context.Context, userID string) (company.Company, error)
	Get(ctx context.Context, id string) (company.Company, error)
	Update(ctx context.Context, userID string, role user.Role, id string, in CompanyInput) (company.Company, error)
	List(ctx context.Context, in CompanyListInput) ([]company.Company, pagination.Meta, error)
	SetVerified(ctx context.Context, id string, verified bool) error
}

type companyUsecase struct {
	companies repository.CompanyRepository
}

func NewCompanyUsecase(companies repository.CompanyRepository) CompanyUsecase {
	return &companyUsecase{companies: companies}
}

func (u *companyUsecase) Create(ctx context.Context, userID string, role user.Role, in CompanyInput) (company.Company, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return company.Company{}, ErrUnauthorized
	}
	if role != user.RoleEmployer {
		return company.Company{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return company.Company{}, ErrInvalidInput
	}

	// One company per employer account.
	if _, err := u.companies.GetByUserID(ctx, uid); err == nil {
		return company.Company{}, ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return company.Company{}, ErrInternal
	}

	c := company.Company{
		ID:          uuid.New(),
		UserID:      uid,
		Name:        strings.TrimSpace(in.Name),
		TaxID:       in.TaxID,
		Description: in.Description,
		Sector:      in.Sector,
		Location:    in.Location,
		Website:     in.Website,
		LogoURL:     in.LogoURL,
		CompanySize: defaultCompanySize(in.CompanySize),
		Phone:       in.Phone,
	}
	if err := u.companies.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return company.Company{}, ErrConflict
		}
		return company.Company{}, ErrInternal
	}
	return u.Get(ctx, c.ID.String())
}

func (u *companyUsecase) Mine(ctx context.Context, userID string) (company.Company, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return company.Company{}, ErrUnauthorized
	}
	c, err := u.companies.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *companyUsecase) Get(ctx context.Context, id string) (company.Company, error) {
	cid, err := parseUUID(id)
	if err != nil {
		return company.Company{}, ErrInvalidInput
	}
	c, err := u.companies.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *companyUsecase) Update(ctx context.Context, userID string, role user.Role, id string, in CompanyInput) (company.Company, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return company.Company{}, ErrUnauthorized
	}
	current, err := u.Get(ctx, id)
	if err != nil {
		return company.Company{}, err
	}
	if current.UserID != uid && role != user.RoleAdmin {
		return company.Company{}, ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return company.Company{}, ErrInvalidInput
	}

	current.Name = strings.TrimSpace(in.Name)
	current.TaxID = in.TaxID
	current.Description = in.Description
	current.Sector = in.Sector
	current.Location = in.Location
	current.Website = in.Website
	current.LogoURL = in.LogoURL
	current.CompanySize = defaultCompanySize(in.CompanySize)
	current.Phone = in.Phone

	if err := u.companies.Update(ctx, current); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return company.Company{}, ErrConflict
		}
		return company.Company{}, ErrInternal
	}
	return u.Get(ctx, id)
}

func (u *companyUsecase) List(ctx context.Context, in CompanyListInput) ([]company.Company, pagination.Meta, error) {
	page := pagination.Normalize(in.Page.Page, in.Page.Limit)
	f := repository.CompanyListFilter{
		Sector:   strings.TrimSpace(in.Sector),
		Location: strings.TrimSpace(in.Location),
		Verified: in.Verified,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}
	out, total, err := u.companies.List(ctx, f)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}
	return out, pagination.NewMeta(page, total), nil
}

func (u *companyUsecase) SetVerified(ctx context.Context, id string, verified bool) error {
	cid, err := parseUUID(id)
	if err != nil {
		return ErrInvalidInput
	}
	err = u.companies.SetVerified(ctx, cid, verified)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}

func defaultCompanySize(size string) string {
	size = strings.TrimSpace(size)
	if size == "" {
		return "1-10"
	}
	return size
}
