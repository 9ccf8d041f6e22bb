package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/internal/domain/category"
	"jobboard/internal/repository"
)

func TestCreateCategory_DuplicateNameConflicts(t *testing.T) {
	repo := newMockCategoryRepo()
	repo.byID[uuid.New()] = category.Category{ID: uuid.New(), Name: "Design", Active: true}
	uc := NewCategoryUsecase(repo)

	_, err := uc.Create(context.Background(), CategoryInput{Name: "Design"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateCategory_EmptyNameRejected(t *testing.T) {
	uc := NewCategoryUsecase(newMockCategoryRepo())

	_, err := uc.Create(context.Background(), CategoryInput{Name: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateCategory_KeepingOwnNameAllowed(t *testing.T) {
	repo := newMockCategoryRepo()
	id := uuid.New()
	repo.byID[id] = category.Category{ID: id, Name: "Design", Active: true}
	uc := NewCategoryUsecase(repo)

	got, err := uc.Update(context.Background(), id.String(), CategoryInput{Name: "Design"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "Design" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestReorderCategories_RejectsDuplicates(t *testing.T) {
	repo := newMockCategoryRepo()
	uc := NewCategoryUsecase(repo)

	id := uuid.New().String()
	err := uc.Reorder(context.Background(), []string{id, id})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.reordered) != 0 {
		t.Fatalf("expected no reorder writes")
	}
}

func TestReorderCategories_PassesParsedIDs(t *testing.T) {
	repo := newMockCategoryRepo()
	uc := NewCategoryUsecase(repo)

	a, b := uuid.New(), uuid.New()
	if err := uc.Reorder(context.Background(), []string{a.String(), b.String()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.reordered) != 1 || len(repo.reordered[0]) != 2 {
		t.Fatalf("expected one reorder call with 2 ids")
	}
	if repo.reordered[0][0] != a || repo.reordered[0][1] != b {
		t.Fatalf("order not preserved")
	}
}

func TestDeleteCategory_InUseConflicts(t *testing.T) {
	repo := newMockCategoryRepo()
	repo.err = repository.ErrCategoryInUse
	uc := NewCategoryUsecase(repo)

	err := uc.Delete(context.Background(), uuid.New().String())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
