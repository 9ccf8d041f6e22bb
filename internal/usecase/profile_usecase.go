package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/profile"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/repository"
)

type ProfileInput struct {
	ProfessionalTitle    *string
	Description          *string
	Location             *string
	BirthDate            *time.Time
	ExperienceLevel      posting.ExperienceLevel
	ExpectedSalary       *float64
	ImmediatelyAvailable bool
	PreferredModality    posting.Modality
}

type ProfileSearchInput struct {
	ExperienceLevel     string
	Location            string
	Modality            string
	SalaryMax           *float64
	ImmediatelyAvailable *bool
	Page                 pagination.Params
}

// ProfileView is a profile plus its derived completeness flag.
type ProfileView struct {
	profile.Profile
	Complete bool `json:"complete"`
}

type ProfileUsecase interface {
	Upsert(ctx context.Context, userID string, role user.Role, in ProfileInput) (ProfileView, error)
	Mine(ctx context.Context, userID string) (ProfileView, error)
	Get(ctx context.Context, role user.Role, id string) (profile.Detail, error)
	AttachCV(ctx context.Context, userID string, cvURL string) (ProfileView, error)
	Search(ctx context.Context, role user.Role, in ProfileSearchInput) ([]profile.Detail, pagination.Meta, error)
}

type profileUsecase struct {
	profiles repository.ProfileRepository
}

func NewProfileUsecase(profiles repository.ProfileRepository) ProfileUsecase {
	return &profileUsecase{profiles: profiles}
}

// Upsert creates the caller's profile on first write and updates it afterwards.
func (u *profileUsecase) Upsert(ctx context.Context, userID string, role user.Role, in ProfileInput) (ProfileView, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return ProfileView{}, ErrUnauthorized
	}
	if role != user.RoleApplicant {
		return ProfileView{}, ErrForbidden
	}
	if err := validateProfileInput(in); err != nil {
		return ProfileView{}, err
	}

	current, err := u.profiles.GetByUserID(ctx, uid)
	switch {
	case err == nil:
		applyProfileInput(&current, in)
		if err := u.profiles.Update(ctx, current); err != nil {
			return ProfileView{}, ErrInternal
		}
	case errors.Is(err, repository.ErrNotFound):
		current = profile.Profile{ID: uuid.New(), UserID: uid}
		applyProfileInput(&current, in)
		if err := u.profiles.Create(ctx, current); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ProfileView{}, ErrConflict
			}
			return ProfileView{}, ErrInternal
		}
	default:
		return ProfileView{}, ErrInternal
	}

	return u.Mine(ctx, userID)
}

func (u *profileUsecase) Mine(ctx context.Context, userID string) (ProfileView, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return ProfileView{}, ErrUnauthorized
	}
	p, err := u.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ProfileView{}, ErrNotFound
		}
		return ProfileView{}, ErrInternal
	}
	return ProfileView{Profile: p, Complete: p.Complete()}, nil
}

// Get exposes applicant details to employers and admins only.
func (u *profileUsecase) Get(ctx context.Context, role user.Role, id string) (profile.Detail, error) {
	if role != user.RoleEmployer && role != user.RoleAdmin {
		return profile.Detail{}, ErrForbidden
	}
	pid, err := parseUUID(id)
	if err != nil {
		return profile.Detail{}, ErrInvalidInput
	}
	d, err := u.profiles.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.Detail{}, ErrNotFound
		}
		return profile.Detail{}, ErrInternal
	}
	return d, nil
}

func (u *profileUsecase) AttachCV(ctx context.Context, userID string, cvURL string) (ProfileView, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return ProfileView{}, ErrUnauthorized
	}
	cvURL = strings.TrimSpace(cvURL)
	if cvURL == "" {
		return ProfileView{}, ErrInvalidInput
	}
	p, err := u.profiles.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ProfileView{}, ErrNotFound
		}
		return ProfileView{}, ErrInternal
	}
	if err := u.profiles.UpdateCV(ctx, p.ID, cvURL); err != nil {
		return ProfileView{}, ErrInternal
	}
	return u.Mine(ctx, userID)
}

func (u *profileUsecase) Search(ctx context.Context, role user.Role, in ProfileSearchInput) ([]profile.Detail, pagination.Meta, error) {
	if role != user.RoleEmployer && role != user.RoleAdmin {
		return nil, pagination.Meta{}, ErrForbidden
	}

	if lvl := strings.TrimSpace(in.ExperienceLevel); lvl != "" && !posting.ExperienceLevel(lvl).Valid() {
		return nil, pagination.Meta{}, ErrInvalidInput
	}
	if mod := strings.TrimSpace(in.Modality); mod != "" && !posting.Modality(mod).Valid() {
		return nil, pagination.Meta{}, ErrInvalidInput
	}

	page := pagination.Normalize(in.Page.Page, in.Page.Limit)
	f := repository.ProfileSearchFilter{
		Location:             strings.TrimSpace(in.Location),
		PreferredModality:    strings.TrimSpace(in.Modality),
		MaxExpectedSalary:    in.SalaryMax,
		ImmediatelyAvailable: in.ImmediatelyAvailable,
		Limit:                page.Limit,
		Offset:               page.Offset(),
	}
	if lvl := strings.TrimSpace(in.ExperienceLevel); lvl != "" {
		f.ExperienceLevels = []string{lvl}
	}
	out, total, err := u.profiles.Search(ctx, f)
	if err != nil {
		return nil, pagination.Meta{}, ErrInternal
	}
	return out, pagination.NewMeta(page, total), nil
}

func validateProfileInput(in ProfileInput) error {
	if in.ExperienceLevel != "" && !in.ExperienceLevel.Valid() {
		return ErrInvalidInput
	}
	if in.PreferredModality != "" && !in.PreferredModality.Valid() {
		return ErrInvalidInput
	}
	if in.ExpectedSalary != nil && *in.ExpectedSalary < 0 {
		return ErrInvalidInput
	}
	return nil
}

func applyProfileInput(p *profile.Profile, in ProfileInput) {
	p.ProfessionalTitle = in.ProfessionalTitle
	p.Description = in.Description
	p.Location = in.Location
	p.BirthDate = in.BirthDate
	if in.ExperienceLevel != "" {
		p.ExperienceLevel = in.ExperienceLevel
	} else if p.ExperienceLevel == "" {
		p.ExperienceLevel = posting.LevelNone
	}
	p.ExpectedSalary = in.ExpectedSalary
	p.ImmediatelyAvailable = in.ImmediatelyAvailable
	if in.PreferredModality != "" {
		p.PreferredModality = in.PreferredModality
	} else if p.PreferredModality == "" {
		p.PreferredModality = posting.ModalityOnSite
	}
}
