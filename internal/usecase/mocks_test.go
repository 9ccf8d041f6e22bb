package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/category"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/profile"
	"jobboard/internal/repository"
)

type mockPostingRepo struct {
	byID map[uuid.UUID]posting.Detail

	created       []posting.Posting
	updated       []posting.Posting
	statusChanges map[uuid.UUID]posting.Status
	views         map[uuid.UUID]int

	err error
}

func newMockPostingRepo() *mockPostingRepo {
	return &mockPostingRepo{
		byID:          map[uuid.UUID]posting.Detail{},
		statusChanges: map[uuid.UUID]posting.Status{},
		views:         map[uuid.UUID]int{},
	}
}

func (m *mockPostingRepo) Create(_ context.Context, p posting.Posting) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, p)
	m.byID[p.ID] = posting.Detail{Posting: p}
	return nil
}

func (m *mockPostingRepo) GetByID(_ context.Context, id uuid.UUID) (posting.Detail, error) {
	if m.err != nil {
		return posting.Detail{}, m.err
	}
	d, ok := m.byID[id]
	if !ok {
		return posting.Detail{}, repository.ErrNotFound
	}
	return d, nil
}

func (m *mockPostingRepo) List(context.Context, repository.PostingListFilter) ([]posting.Detail, int, error) {
	out := make([]posting.Detail, 0, len(m.byID))
	for _, d := range m.byID {
		out = append(out, d)
	}
	return out, len(out), m.err
}

func (m *mockPostingRepo) ListByCompany(context.Context, uuid.UUID, int, int) ([]posting.Detail, int, error) {
	return nil, 0, m.err
}

func (m *mockPostingRepo) Update(_ context.Context, p posting.Posting) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, p)
	m.byID[p.ID] = posting.Detail{Posting: p}
	return nil
}

func (m *mockPostingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status posting.Status) error {
	if m.err != nil {
		return m.err
	}
	m.statusChanges[id] = status
	d := m.byID[id]
	d.Status = status
	m.byID[id] = d
	return nil
}

func (m *mockPostingRepo) Approve(_ context.Context, id uuid.UUID, approved bool) error {
	if m.err != nil {
		return m.err
	}
	d := m.byID[id]
	d.ApprovedByAdmin = approved
	if approved {
		d.Status = posting.StatusActive
	}
	m.byID[id] = d
	return nil
}

func (m *mockPostingRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	m.views[id]++
	return m.err
}

func (m *mockPostingRepo) GeneralStats(context.Context) (posting.GeneralStats, error) {
	return posting.GeneralStats{}, m.err
}

type mockCompanyRepo struct {
	byUserID map[uuid.UUID]company.Company
	err      error
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{byUserID: map[uuid.UUID]company.Company{}}
}

func (m *mockCompanyRepo) Create(context.Context, company.Company) error { return m.err }

func (m *mockCompanyRepo) GetByID(context.Context, uuid.UUID) (company.Company, error) {
	return company.Company{}, repository.ErrNotFound
}

func (m *mockCompanyRepo) GetByUserID(_ context.Context, userID uuid.UUID) (company.Company, error) {
	if m.err != nil {
		return company.Company{}, m.err
	}
	c, ok := m.byUserID[userID]
	if !ok {
		return company.Company{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCompanyRepo) Update(context.Context, company.Company) error { return m.err }

func (m *mockCompanyRepo) List(context.Context, repository.CompanyListFilter) ([]company.Company, int, error) {
	return nil, 0, m.err
}

func (m *mockCompanyRepo) SetVerified(context.Context, uuid.UUID, bool) error { return m.err }

type mockCategoryRepo struct {
	byID      map[uuid.UUID]category.Category
	reordered [][]uuid.UUID
	err       error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{byID: map[uuid.UUID]category.Category{}}
}

func (m *mockCategoryRepo) Create(_ context.Context, c category.Category) error {
	if m.err != nil {
		return m.err
	}
	m.byID[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (category.Category, error) {
	if m.err != nil {
		return category.Category{}, m.err
	}
	c, ok := m.byID[id]
	if !ok {
		return category.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) List(context.Context, bool) ([]category.Category, error) {
	return nil, m.err
}

func (m *mockCategoryRepo) ListWithCounts(context.Context) ([]category.WithCounts, error) {
	return nil, m.err
}

func (m *mockCategoryRepo) Update(_ context.Context, c category.Category) error {
	if m.err != nil {
		return m.err
	}
	m.byID[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Delete(context.Context, uuid.UUID) error { return m.err }

func (m *mockCategoryRepo) NameExists(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for id, c := range m.byID {
		if c.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCategoryRepo) Reorder(_ context.Context, ids []uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.reordered = append(m.reordered, ids)
	return nil
}

func (m *mockCategoryRepo) Stats(context.Context, uuid.UUID) (category.Stats, error) {
	return category.Stats{}, m.err
}

type mockProfileRepo struct {
	byUserID map[uuid.UUID]profile.Profile
	err      error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{byUserID: map[uuid.UUID]profile.Profile{}}
}

func (m *mockProfileRepo) Create(_ context.Context, p profile.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.byUserID[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) GetByID(context.Context, uuid.UUID) (profile.Detail, error) {
	return profile.Detail{}, repository.ErrNotFound
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	if m.err != nil {
		return profile.Profile{}, m.err
	}
	p, ok := m.byUserID[userID]
	if !ok {
		return profile.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) Update(_ context.Context, p profile.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.byUserID[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) UpdateCV(context.Context, uuid.UUID, string) error { return m.err }

func (m *mockProfileRepo) Search(context.Context, repository.ProfileSearchFilter) ([]profile.Detail, int, error) {
	return nil, 0, m.err
}

func companyWithID(id, userID uuid.UUID) company.Company {
	return company.Company{ID: id, UserID: userID, Name: "Acme"}
}

type statusChange struct {
	id     uuid.UUID
	status application.Status
	notes  *string
}

type mockApplicationRepo struct {
	byID   map[uuid.UUID]application.Detail
	exists map[uuid.UUID]map[uuid.UUID]bool

	created       []application.Application
	statusChanges []statusChange
	scores        map[uuid.UUID]int

	createErr error
	err       error
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{
		byID:   map[uuid.UUID]application.Detail{},
		exists: map[uuid.UUID]map[uuid.UUID]bool{},
		scores: map[uuid.UUID]int{},
	}
}

func (m *mockApplicationRepo) markApplied(postingID, profileID uuid.UUID) {
	if m.exists[postingID] == nil {
		m.exists[postingID] = map[uuid.UUID]bool{}
	}
	m.exists[postingID][profileID] = true
}

func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.err != nil {
		return m.err
	}
	if m.exists[a.PostingID][a.ProfileID] {
		return repository.ErrDuplicate
	}
	m.created = append(m.created, a)
	m.markApplied(a.PostingID, a.ProfileID)
	a.SubmittedAt = time.Now()
	m.byID[a.ID] = application.Detail{Application: a}
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Detail, error) {
	if m.err != nil {
		return application.Detail{}, m.err
	}
	d, ok := m.byID[id]
	if !ok {
		return application.Detail{}, repository.ErrNotFound
	}
	return d, nil
}

func (m *mockApplicationRepo) Exists(_ context.Context, postingID, profileID uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists[postingID][profileID], nil
}

func (m *mockApplicationRepo) ListByProfile(context.Context, uuid.UUID, int, int) ([]application.Detail, int, error) {
	return nil, 0, m.err
}

func (m *mockApplicationRepo) ListByPosting(context.Context, uuid.UUID, repository.ApplicationListFilter) ([]application.Detail, int, error) {
	return nil, 0, m.err
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status, notes *string) error {
	if m.err != nil {
		return m.err
	}
	m.statusChanges = append(m.statusChanges, statusChange{id: id, status: status, notes: notes})
	d := m.byID[id]
	d.Status = status
	now := time.Now()
	d.StatusChangedAt = &now
	if notes != nil {
		d.EmployerNotes = notes
	}
	m.byID[id] = d
	return nil
}

func (m *mockApplicationRepo) UpdateNotes(_ context.Context, id uuid.UUID, notes string) error {
	if m.err != nil {
		return m.err
	}
	d := m.byID[id]
	d.EmployerNotes = &notes
	m.byID[id] = d
	return nil
}

func (m *mockApplicationRepo) UpdateScore(_ context.Context, id uuid.UUID, score int) error {
	if m.err != nil {
		return m.err
	}
	m.scores[id] = score
	d := m.byID[id]
	d.MatchScore = &score
	m.byID[id] = d
	return nil
}

func (m *mockApplicationRepo) PostingStats(context.Context, uuid.UUID) (application.PostingStats, error) {
	return application.PostingStats{}, m.err
}

func (m *mockApplicationRepo) ProfileStats(context.Context, uuid.UUID) (application.PostingStats, error) {
	return application.PostingStats{}, m.err
}

func (m *mockApplicationRepo) GeneralStats(context.Context) (application.GeneralStats, error) {
	return application.GeneralStats{}, m.err
}

type recordedNotifier struct {
	received      []application.Detail
	statusChanged []application.Detail
}

func (n *recordedNotifier) ApplicationReceived(d application.Detail) {
	n.received = append(n.received, d)
}

func (n *recordedNotifier) ApplicationStatusChanged(d application.Detail) {
	n.statusChanged = append(n.statusChanged, d)
}
