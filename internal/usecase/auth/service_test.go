package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"jobboard/internal/domain/user"
	"jobboard/internal/repository"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
	err     error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]user.User{}, byID: map[uuid.UUID]user.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.Active = true
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok || !u.Active {
		return user.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) Update(context.Context, user.User) error { return m.err }

func (m *mockUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u := m.byID[id]
	u.Active = false
	m.byID[id] = u
	m.byEmail[u.Email] = u
	return m.err
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:     "Jane.Doe@Example.com",
		Password:  "correct-horse",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      user.RoleApplicant,
	}
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "jane.doe@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("hash must not leave the service")
	}

	stored := repo.byEmail["jane.doe@example.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "correct-horse" {
		t.Fatalf("expected bcrypt hash stored")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("seed register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), validRegisterInput())
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	svc := NewService(newMockUserRepo())

	in := validRegisterInput()
	in.Role = user.RoleAdmin
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc := NewService(newMockUserRepo())

	in := validRegisterInput()
	in.Password = "short"
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "jane.doe@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Role != user.RoleApplicant {
		t.Fatalf("unexpected role %s", u.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Email: "jane.doe@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)
	u, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := repo.Deactivate(context.Background(), u.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginInput{Email: "jane.doe@example.com", Password: "correct-horse"})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newMockUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
