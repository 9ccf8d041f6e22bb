package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/application"
)

type ApplicationListFilter struct {
	Statuses []string
	MinScore *int
	DateFrom *time.Time
	DateTo   *time.Time
	Order    string
	Limit    int
	Offset   int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (application.Detail, error)
	Exists(ctx context.Context, postingID, profileID uuid.UUID) (bool, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]application.Detail, int, error)
	ListByPosting(ctx context.Context, postingID uuid.UUID, f ApplicationListFilter) ([]application.Detail, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, notes *string) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	UpdateScore(ctx context.Context, id uuid.UUID, score int) error
	PostingStats(ctx context.Context, postingID uuid.UUID) (application.PostingStats, error)
	ProfileStats(ctx context.Context, profileID uuid.UUID) (application.PostingStats, error)
	GeneralStats(ctx context.Context) (application.GeneralStats, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Create relies on the (posting_id, profile_id) unique constraint to reject
// concurrent duplicates; the eligibility pre-check cannot close that race on
// its own.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, posting_id, profile_id, cover_letter, cv_url)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.PostingID, a.ProfileID, a.CoverLetter, a.CVURL,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

const applicationDetailSelect = `
	SELECT a.id, a.posting_id, a.profile_id, a.submitted_at, a.status, a.cover_letter,
	       a.cv_url, a.status_changed_at, a.employer_notes, a.match_score,
	       o.title, o.location, o.modality, o.status, o.salary_min, o.salary_max,
	       c.id, c.name, c.logo_url,
	       cat.name,
	       u.first_name || ' ' || u.last_name, u.email, u.phone,
	       p.professional_title, p.experience_level, p.expected_salary
	FROM applications a
	JOIN postings o ON o.id = a.posting_id
	JOIN companies c ON c.id = o.company_id
	JOIN categories cat ON cat.id = o.category_id
	JOIN applicant_profiles p ON p.id = a.profile_id
	JOIN users u ON u.id = p.user_id`

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Detail, error) {
	row := r.db.QueryRow(ctx, applicationDetailSelect+` WHERE a.id = $1`, id)
	return scanApplicationDetail(row)
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, postingID, profileID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM applications WHERE posting_id = $1 AND profile_id = $2`,
		postingID, profileID)
	var c int
	if err := row.Scan(&c); err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *PostgresApplicationRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]application.Detail, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM applications WHERE profile_id = $1`, profileID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		applicationDetailSelect+` WHERE a.profile_id = $1
		 ORDER BY a.submitted_at DESC LIMIT $2 OFFSET $3`,
		profileID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectApplicationDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresApplicationRepository) ListByPosting(ctx context.Context, postingID uuid.UUID, f ApplicationListFilter) ([]application.Detail, int, error) {
	args := []any{postingID}
	arg := func(v any) string {
		args = append(args, v)
		return `$` + itoa(len(args))
	}

	where := ` WHERE a.posting_id = $1`
	if len(f.Statuses) > 0 {
		where += ` AND a.status = ANY(` + arg(f.Statuses) + `)`
	}
	if f.MinScore != nil {
		where += ` AND a.match_score >= ` + arg(*f.MinScore)
	}
	if f.DateFrom != nil {
		where += ` AND a.submitted_at >= ` + arg(*f.DateFrom)
	}
	if f.DateTo != nil {
		where += ` AND a.submitted_at <= ` + arg(*f.DateTo)
	}

	var total int
	countQ := `SELECT COUNT(1) FROM applications a` + where
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := applicationDetailSelect + where + orderClauseForApplications(f.Order) +
		` LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectApplicationDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func orderClauseForApplications(order string) string {
	switch order {
	case "date_asc":
		return ` ORDER BY a.submitted_at ASC`
	case "score_desc":
		return ` ORDER BY a.match_score DESC NULLS LAST, a.submitted_at DESC`
	case "name":
		return ` ORDER BY u.first_name ASC, u.last_name ASC`
	default:
		return ` ORDER BY a.submitted_at DESC`
	}
}

// UpdateStatus stamps status_changed_at on every transition; notes are
// overwritten only when supplied.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, notes *string) error {
	var n int64
	var err error
	now := time.Now().UTC()
	if notes != nil {
		n, err = r.db.Exec(ctx,
			`UPDATE applications
			 SET status = $2, status_changed_at = $3, employer_notes = $4
			 WHERE id = $1`,
			id, status, now, *notes)
	} else {
		n, err = r.db.Exec(ctx,
			`UPDATE applications SET status = $2, status_changed_at = $3 WHERE id = $1`,
			id, status, now)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET employer_notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) UpdateScore(ctx context.Context, id uuid.UUID, score int) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET match_score = $2 WHERE id = $1`, id, score)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) PostingStats(ctx context.Context, postingID uuid.UUID) (application.PostingStats, error) {
	row := r.db.QueryRow(ctx, statusBreakdownSelect+` FROM applications WHERE posting_id = $1`, postingID)
	return scanPostingStats(row)
}

func (r *PostgresApplicationRepository) ProfileStats(ctx context.Context, profileID uuid.UUID) (application.PostingStats, error) {
	row := r.db.QueryRow(ctx, statusBreakdownSelect+` FROM applications WHERE profile_id = $1`, profileID)
	return scanPostingStats(row)
}

const statusBreakdownSelect = `
	SELECT COUNT(1),
	       COUNT(CASE WHEN status = 'pending' THEN 1 END),
	       COUNT(CASE WHEN status = 'in_review' THEN 1 END),
	       COUNT(CASE WHEN status = 'shortlisted' THEN 1 END),
	       COUNT(CASE WHEN status = 'interview' THEN 1 END),
	       COUNT(CASE WHEN status = 'accepted' THEN 1 END),
	       COUNT(CASE WHEN status = 'rejected' THEN 1 END),
	       AVG(match_score),
	       MAX(match_score)`

func scanPostingStats(row database.Row) (application.PostingStats, error) {
	var s application.PostingStats
	err := row.Scan(
		&s.Total, &s.Pending, &s.InReview, &s.Shortlisted, &s.Interview,
		&s.Accepted, &s.Rejected, &s.AvgScore, &s.BestScore,
	)
	if err != nil {
		return application.PostingStats{}, err
	}
	return s, nil
}

func (r *PostgresApplicationRepository) GeneralStats(ctx context.Context) (application.GeneralStats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1),
		        COUNT(CASE WHEN status = 'accepted' THEN 1 END),
		        COUNT(CASE WHEN submitted_at >= now() - INTERVAL '7 days' THEN 1 END),
		        COUNT(CASE WHEN submitted_at >= now() - INTERVAL '30 days' THEN 1 END),
		        AVG(match_score),
		        COUNT(DISTINCT profile_id),
		        COUNT(DISTINCT posting_id)
		 FROM applications`)

	var s application.GeneralStats
	err := row.Scan(
		&s.Total, &s.SuccessfulHires, &s.LastSevenDays, &s.LastThirtyDays,
		&s.AvgScore, &s.ActiveApplicants, &s.PostingsWithApplication,
	)
	if err != nil {
		return application.GeneralStats{}, err
	}
	s.ConversionRate = ConversionRate(s.SuccessfulHires, s.Total)
	return s, nil
}

// ConversionRate is accepted/total as a percentage rounded to two decimals;
// zero when there are no applications.
func ConversionRate(accepted, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(accepted)/float64(total)*100*100) / 100
}

func collectApplicationDetails(rows database.Rows) ([]application.Detail, error) {
	out := make([]application.Detail, 0)
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplicationDetail(row database.Row) (application.Detail, error) {
	var d application.Detail
	err := row.Scan(
		&d.ID, &d.PostingID, &d.ProfileID, &d.SubmittedAt, &d.Status, &d.CoverLetter,
		&d.CVURL, &d.StatusChangedAt, &d.EmployerNotes, &d.MatchScore,
		&d.PostingTitle, &d.PostingLocation, &d.PostingModality, &d.PostingStatus,
		&d.SalaryMin, &d.SalaryMax,
		&d.CompanyID, &d.CompanyName, &d.CompanyLogoURL,
		&d.CategoryName,
		&d.ApplicantName, &d.ApplicantEmail, &d.ApplicantPhone,
		&d.ApplicantTitle, &d.ApplicantLevel, &d.ExpectedSalary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Detail{}, ErrNotFound
		}
		return application.Detail{}, err
	}
	return d, nil
}
