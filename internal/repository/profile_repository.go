package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/profile"
)

type ProfileSearchFilter struct {
	Location             string
	ExperienceLevels     []string
	MaxExpectedSalary    *float64
	ImmediatelyAvailable *bool
	PreferredModality    string
	Limit                int
	Offset               int
}

type ProfileRepository interface {
	Create(ctx context.Context, p profile.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (profile.Detail, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Update(ctx context.Context, p profile.Profile) error
	UpdateCV(ctx context.Context, id uuid.UUID, cvURL string) error
	Search(ctx context.Context, f ProfileSearchFilter) ([]profile.Detail, int, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, professional_title, description, location, birth_date,
	experience_level, expected_salary, cv_url, cv_uploaded_at, immediately_available,
	preferred_modality, created_at, updated_at`

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applicant_profiles (
			id, user_id, professional_title, description, location, birth_date,
			experience_level, expected_salary, immediately_available, preferred_modality
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.UserID, p.ProfessionalTitle, p.Description, p.Location, p.BirthDate,
		p.ExperienceLevel, p.ExpectedSalary, p.ImmediatelyAvailable, p.PreferredModality,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

const profileDetailSelect = `
	SELECT p.id, p.user_id, p.professional_title, p.description, p.location, p.birth_date,
	       p.experience_level, p.expected_salary, p.cv_url, p.cv_uploaded_at,
	       p.immediately_available, p.preferred_modality, p.created_at, p.updated_at,
	       u.first_name, u.last_name, u.email, u.phone
	FROM applicant_profiles p
	JOIN users u ON u.id = p.user_id`

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Detail, error) {
	row := r.db.QueryRow(ctx, profileDetailSelect+` WHERE p.id = $1`, id)
	return scanProfileDetail(row)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM applicant_profiles WHERE user_id = $1`, userID)

	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.ProfessionalTitle, &p.Description, &p.Location, &p.BirthDate,
		&p.ExperienceLevel, &p.ExpectedSalary, &p.CVURL, &p.CVUploadedAt,
		&p.ImmediatelyAvailable, &p.PreferredModality, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applicant_profiles
		 SET professional_title = $2, description = $3, location = $4, birth_date = $5,
		     experience_level = $6, expected_salary = $7, immediately_available = $8,
		     preferred_modality = $9, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.ProfessionalTitle, p.Description, p.Location, p.BirthDate,
		p.ExperienceLevel, p.ExpectedSalary, p.ImmediatelyAvailable, p.PreferredModality,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) UpdateCV(ctx context.Context, id uuid.UUID, cvURL string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applicant_profiles
		 SET cv_url = $2, cv_uploaded_at = $3, updated_at = now()
		 WHERE id = $1`,
		id, cvURL, time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) Search(ctx context.Context, f ProfileSearchFilter) ([]profile.Detail, int, error) {
	where := ` WHERE u.active = true`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return `$` + itoa(len(args))
	}

	if f.Location != "" {
		where += ` AND p.location ILIKE ` + arg("%"+f.Location+"%")
	}
	if len(f.ExperienceLevels) > 0 {
		where += ` AND p.experience_level = ANY(` + arg(f.ExperienceLevels) + `)`
	}
	if f.MaxExpectedSalary != nil {
		where += ` AND (p.expected_salary <= ` + arg(*f.MaxExpectedSalary) + ` OR p.expected_salary IS NULL)`
	}
	if f.ImmediatelyAvailable != nil {
		where += ` AND p.immediately_available = ` + arg(*f.ImmediatelyAvailable)
	}
	if f.PreferredModality != "" {
		where += ` AND p.preferred_modality = ` + arg(f.PreferredModality)
	}

	var total int
	countQ := `SELECT COUNT(1) FROM applicant_profiles p JOIN users u ON u.id = p.user_id` + where
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := profileDetailSelect + where + ` ORDER BY p.updated_at DESC LIMIT ` +
		arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]profile.Detail, 0)
	for rows.Next() {
		d, err := scanProfileDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanProfileDetail(row database.Row) (profile.Detail, error) {
	var d profile.Detail
	err := row.Scan(
		&d.ID, &d.UserID, &d.ProfessionalTitle, &d.Description, &d.Location, &d.BirthDate,
		&d.ExperienceLevel, &d.ExpectedSalary, &d.CVURL, &d.CVUploadedAt,
		&d.ImmediatelyAvailable, &d.PreferredModality, &d.CreatedAt, &d.UpdatedAt,
		&d.FirstName, &d.LastName, &d.Email, &d.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Detail{}, ErrNotFound
		}
		return profile.Detail{}, err
	}
	return d, nil
}
