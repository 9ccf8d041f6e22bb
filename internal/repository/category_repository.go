package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/category"
)

// ErrCategoryInUse guards deletion: categories referenced by postings stay.
var ErrCategoryInUse = errors.New("category has postings")

type CategoryRepository interface {
	Create(ctx context.Context, c category.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (category.Category, error)
	List(ctx context.Context, includeInactive bool) ([]category.Category, error)
	ListWithCounts(ctx context.Context) ([]category.WithCounts, error)
	Update(ctx context.Context, c category.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Reorder(ctx context.Context, ids []uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (category.Stats, error)
}

type PostgresCategoryRepository struct {
	db database.DB
}

func NewPostgresCategoryRepository(db database.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categoryColumns = `id, name, description, icon, active, display_order, created_at`

func (r *PostgresCategoryRepository) Create(ctx context.Context, c category.Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (id, name, description, icon, active, display_order)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Description, c.Icon, c.Active, c.DisplayOrder,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (category.Category, error) {
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

func (r *PostgresCategoryRepository) List(ctx context.Context, includeInactive bool) ([]category.Category, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeInactive {
		q += ` WHERE active = true`
	}
	q += ` ORDER BY display_order ASC, name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCategoryRepository) ListWithCounts(ctx context.Context) ([]category.WithCounts, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.name, c.description, c.icon, c.active, c.display_order, c.created_at,
		        COUNT(p.id) AS total_postings,
		        COUNT(CASE WHEN p.status = 'active' AND p.approved_by_admin THEN 1 END) AS active_postings
		 FROM categories c
		 LEFT JOIN postings p ON p.category_id = c.id
		 WHERE c.active = true
		 GROUP BY c.id
		 ORDER BY c.display_order ASC, c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]category.WithCounts, 0)
	for rows.Next() {
		var c category.WithCounts
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Icon, &c.Active, &c.DisplayOrder, &c.CreatedAt,
			&c.TotalPostings, &c.ActivePostings,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c category.Category) error {
	n, err := r.db.Exec(ctx,
		`UPDATE categories
		 SET name = $2, description = $3, icon = $4, active = $5, display_order = $6
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Icon, c.Active, c.DisplayOrder,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM postings WHERE category_id = $1`, id)
	var c int
	if err := row.Scan(&c); err != nil {
		return err
	}
	if c > 0 {
		return ErrCategoryInUse
	}

	n, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCategoryRepository) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var c int
	var err error
	if excludeID == uuid.Nil {
		err = r.db.QueryRow(ctx, `SELECT COUNT(1) FROM categories WHERE name = $1`, name).Scan(&c)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(1) FROM categories WHERE name = $1 AND id <> $2`, name, excludeID).Scan(&c)
	}
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Reorder rewrites display_order for the given IDs inside one transaction so
// a partial failure never leaves a half-applied ordering.
func (r *PostgresCategoryRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for i, id := range ids {
		if _, err := tx.Exec(ctx,
			`UPDATE categories SET display_order = $2 WHERE id = $1`, id, i+1); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresCategoryRepository) Stats(ctx context.Context, id uuid.UUID) (category.Stats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(p.id),
		        COUNT(CASE WHEN p.status = 'active' THEN 1 END),
		        COUNT(CASE WHEN p.status = 'paused' THEN 1 END),
		        COUNT(CASE WHEN p.status = 'closed' THEN 1 END),
		        COUNT(DISTINCT a.id),
		        AVG(p.salary_min),
		        AVG(p.salary_max)
		 FROM categories c
		 LEFT JOIN postings p ON p.category_id = c.id
		 LEFT JOIN applications a ON a.posting_id = p.id
		 WHERE c.id = $1`, id)

	var s category.Stats
	err := row.Scan(
		&s.TotalPostings, &s.ActivePostings, &s.PausedPostings, &s.ClosedPostings,
		&s.TotalApplications, &s.AvgSalaryMin, &s.AvgSalaryMax,
	)
	if err != nil {
		return category.Stats{}, err
	}
	return s, nil
}

func scanCategory(row database.Row) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Active, &c.DisplayOrder, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}
