package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/company"
)

type CompanyListFilter struct {
	Sector   string
	Location string
	Verified *bool
	Limit    int
	Offset   int
}

type CompanyRepository interface {
	Create(ctx context.Context, c company.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (company.Company, error)
	Update(ctx context.Context, c company.Company) error
	List(ctx context.Context, f CompanyListFilter) ([]company.Company, int, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, user_id, name, tax_id, description, sector, location, website, logo_url, company_size, phone, verified, created_at, updated_at`

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO companies (id, user_id, name, tax_id, description, sector, location, website, logo_url, company_size, phone)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.UserID, c.Name, c.TaxID, c.Description, c.Sector, c.Location,
		c.Website, c.LogoURL, c.CompanySize, c.Phone,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) error {
	n, err := r.db.Exec(ctx,
		`UPDATE companies
		 SET name = $2, tax_id = $3, description = $4, sector = $5, location = $6,
		     website = $7, logo_url = $8, company_size = $9, phone = $10, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.TaxID, c.Description, c.Sector, c.Location,
		c.Website, c.LogoURL, c.CompanySize, c.Phone,
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

func (r *PostgresCompanyRepository) List(ctx context.Context, f CompanyListFilter) ([]company.Company, int, error) {
	where := ` FROM companies c JOIN users u ON u.id = c.user_id WHERE u.active = true`
	args := []any{}

	if f.Sector != "" {
		args = append(args, f.Sector)
		where += ` AND c.sector = $` + itoa(len(args))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		where += ` AND c.location ILIKE $` + itoa(len(args))
	}
	if f.Verified != nil {
		args = append(args, *f.Verified)
		where += ` AND c.verified = $` + itoa(len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1)`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit)
	limitArg := itoa(len(args))
	args = append(args, f.Offset)
	offsetArg := itoa(len(args))

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.user_id, c.name, c.tax_id, c.description, c.sector, c.location,
		        c.website, c.logo_url, c.company_size, c.phone, c.verified, c.created_at, c.updated_at`+
			where+` ORDER BY c.name ASC LIMIT $`+limitArg+` OFFSET $`+offsetArg,
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresCompanyRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	n, err := r.db.Exec(ctx,
		`UPDATE companies SET verified = $2, updated_at = now() WHERE id = $1`, id, verified)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.TaxID, &c.Description, &c.Sector, &c.Location,
		&c.Website, &c.LogoURL, &c.CompanySize, &c.Phone, &c.Verified, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}
