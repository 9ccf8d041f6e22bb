package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobboard/internal/domain/category"
	"jobboard/internal/repository"
)

type CategoryInput struct {
	Name        string
	Description *string
	Icon        *string
}

type CategoryUsecase interface {
	List(ctx context.Context, includeInactive bool) ([]category.Category, error)
	ListWithCounts(ctx context.Context) ([]category.WithCounts, error)
	Get(ctx context.Context, id string) (category.Category, error)
	Create(ctx context.Context, in CategoryInput) (category.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (category.Category, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
	Stats(ctx context.Context, id string) (category.Stats, error)
}

type categoryUsecase struct {
	categories repository.CategoryRepository
}

func NewCategoryUsecase(categories repository.CategoryRepository) CategoryUsecase {
	return &categoryUsecase{categories: categories}
}

func (u *categoryUsecase) List(ctx context.Context, includeInactive bool) ([]category.Category, error) {
	out, err := u.categories.List(ctx, includeInactive)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *categoryUsecase) ListWithCounts(ctx context.Context) ([]category.WithCounts, error) {
	out, err := u.categories.ListWithCounts(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *categoryUsecase) Get(ctx context.Context, id string) (category.Category, error) {
	cid, err := parseUUID(id)
	if err != nil {
		return category.Category{}, ErrInvalidInput
	}
	c, err := u.categories.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return category.Category{}, ErrNotFound
		}
		return category.Category{}, ErrInternal
	}
	return c, nil
}

func (u *categoryUsecase) Create(ctx context.Context, in CategoryInput) (category.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return category.Category{}, ErrInvalidInput
	}

	taken, err := u.categories.NameExists(ctx, name, uuid.Nil)
	if err != nil {
		return category.Category{}, ErrInternal
	}
	if taken {
		return category.Category{}, ErrConflict
	}

	c := category.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: in.Description,
		Icon:        in.Icon,
		Active:      true,
	}
	if err := u.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return category.Category{}, ErrConflict
		}
		return category.Category{}, ErrInternal
	}
	return u.Get(ctx, c.ID.String())
}

func (u *categoryUsecase) Update(ctx context.Context, id string, in CategoryInput) (category.Category, error) {
	cid, err := parseUUID(id)
	if err != nil {
		return category.Category{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return category.Category{}, ErrInvalidInput
	}

	current, err := u.categories.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return category.Category{}, ErrNotFound
		}
		return category.Category{}, ErrInternal
	}

	taken, err := u.categories.NameExists(ctx, name, cid)
	if err != nil {
		return category.Category{}, ErrInternal
	}
	if taken {
		return category.Category{}, ErrConflict
	}

	current.Name = name
	current.Description = in.Description
	current.Icon = in.Icon
	if err := u.categories.Update(ctx, current); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return category.Category{}, ErrConflict
		}
		return category.Category{}, ErrInternal
	}
	return u.Get(ctx, cid.String())
}

func (u *categoryUsecase) SetActive(ctx context.Context, id string, active bool) error {
	cid, err := parseUUID(id)
	if err != nil {
		return ErrInvalidInput
	}
	current, err := u.categories.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	current.Active = active
	if err := u.categories.Update(ctx, current); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *categoryUsecase) Delete(ctx context.Context, id string) error {
	cid, err := parseUUID(id)
	if err != nil {
		return ErrInvalidInput
	}
	err = u.categories.Delete(ctx, cid)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrCategoryInUse):
		return ErrConflict
	default:
		return ErrInternal
	}
}

func (u *categoryUsecase) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return ErrInvalidInput
	}
	parsed := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, raw := range ids {
		id, err := parseUUID(raw)
		if err != nil {
			return ErrInvalidInput
		}
		if _, dup := seen[id]; dup {
			return ErrInvalidInput
		}
		seen[id] = struct{}{}
		parsed = append(parsed, id)
	}
	if err := u.categories.Reorder(ctx, parsed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *categoryUsecase) Stats(ctx context.Context, id string) (category.Stats, error) {
	cid, err := parseUUID(id)
	if err != nil {
		return category.Stats{}, ErrInvalidInput
	}
	if _, err := u.categories.GetByID(ctx, cid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return category.Stats{}, ErrNotFound
		}
		return category.Stats{}, ErrInternal
	}
	stats, err := u.categories.Stats(ctx, cid)
	if err != nil {
		return category.Stats{}, ErrInternal
	}
	return stats, nil
}
