package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobboard/internal/database"
	"jobboard/internal/domain/posting"
)

type PostingListFilter struct {
	Search           string
	CategoryID       uuid.UUID
	Location         string
	Modalities       []string
	ContractTypes    []string
	ExperienceLevels []string
	SalaryMin        *float64
	SalaryMax        *float64
	PublishedWithin  int // days; 0 means no bound
	CompanyID        uuid.UUID
	Status           string // overrides the public-visibility filter when set
	Order            string
	Limit            int
	Offset           int
}

type PostingRepository interface {
	Create(ctx context.Context, p posting.Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (posting.Detail, error)
	List(ctx context.Context, f PostingListFilter) ([]posting.Detail, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]posting.Detail, int, error)
	Update(ctx context.Context, p posting.Posting) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status posting.Status) error
	Approve(ctx context.Context, id uuid.UUID, approved bool) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	GeneralStats(ctx context.Context) (posting.GeneralStats, error)
}

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

func (r *PostgresPostingRepository) Create(ctx context.Context, p posting.Posting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO postings (
			id, company_id, category_id, title, description, requirements,
			responsibilities, benefits, salary_min, salary_max, currency, location,
			modality, contract_type, experience_level, vacancies, expires_at,
			desired_start_date, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		p.ID, p.CompanyID, p.CategoryID, p.Title, p.Description, p.Requirements,
		p.Responsibilities, p.Benefits, p.SalaryMin, p.SalaryMax, p.Currency, p.Location,
		p.Modality, p.ContractType, p.ExperienceLevel, p.Vacancies, p.ExpiresAt,
		p.DesiredStartDate, p.Status,
	)
	return err
}

const postingDetailSelect = `
	SELECT p.id, p.company_id, p.category_id, p.title, p.description, p.requirements,
	       p.responsibilities, p.benefits, p.salary_min, p.salary_max, p.currency,
	       p.location, p.modality, p.contract_type, p.experience_level, p.vacancies,
	       p.published_at, p.expires_at, p.desired_start_date, p.status,
	       p.approved_by_admin, p.approved_at, p.views, p.created_at, p.updated_at,
	       c.name, c.logo_url, c.location, c.website,
	       cat.name, cat.icon,
	       COUNT(DISTINCT a.id),
	       COUNT(DISTINCT CASE WHEN a.status = 'pending' THEN a.id END)
	FROM postings p
	JOIN companies c ON c.id = p.company_id
	JOIN categories cat ON cat.id = p.category_id
	LEFT JOIN applications a ON a.posting_id = p.id`

const postingDetailGroupBy = ` GROUP BY p.id, c.name, c.logo_url, c.location, c.website, cat.name, cat.icon`

func (r *PostgresPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (posting.Detail, error) {
	row := r.db.QueryRow(ctx, postingDetailSelect+` WHERE p.id = $1`+postingDetailGroupBy, id)
	return scanPostingDetail(row)
}

func (r *PostgresPostingRepository) List(ctx context.Context, f PostingListFilter) ([]posting.Detail, int, error) {
	where := ``
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return `$` + itoa(len(args))
	}

	if f.Status != "" {
		where = ` WHERE p.status = ` + arg(f.Status)
	} else {
		where = ` WHERE p.status = 'active' AND p.approved_by_admin = true`
	}

	if f.Search != "" {
		s := arg("%" + f.Search + "%")
		where += ` AND (p.title ILIKE ` + s + ` OR p.description ILIKE ` + s + ` OR c.name ILIKE ` + s + `)`
	}
	if f.CategoryID != uuid.Nil {
		where += ` AND p.category_id = ` + arg(f.CategoryID)
	}
	if f.Location != "" {
		where += ` AND p.location ILIKE ` + arg("%"+f.Location+"%")
	}
	if len(f.Modalities) > 0 {
		where += ` AND p.modality = ANY(` + arg(f.Modalities) + `)`
	}
	if len(f.ContractTypes) > 0 {
		where += ` AND p.contract_type = ANY(` + arg(f.ContractTypes) + `)`
	}
	if len(f.ExperienceLevels) > 0 {
		where += ` AND p.experience_level = ANY(` + arg(f.ExperienceLevels) + `)`
	}
	if f.SalaryMin != nil {
		where += ` AND (p.salary_min >= ` + arg(*f.SalaryMin) + ` OR p.salary_min IS NULL)`
	}
	if f.SalaryMax != nil {
		where += ` AND (p.salary_max <= ` + arg(*f.SalaryMax) + ` OR p.salary_max IS NULL)`
	}
	if f.PublishedWithin > 0 {
		where += ` AND p.published_at >= now() - (` + arg(f.PublishedWithin) + ` * INTERVAL '1 day')`
	}
	if f.CompanyID != uuid.Nil {
		where += ` AND p.company_id = ` + arg(f.CompanyID)
	}

	var total int
	countQ := `SELECT COUNT(DISTINCT p.id) FROM postings p JOIN companies c ON c.id = p.company_id` + where
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := orderClauseForPostings(f.Order)
	q := postingDetailSelect + where + postingDetailGroupBy + order +
		` LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]posting.Detail, 0)
	for rows.Next() {
		d, err := scanPostingDetail(rows)
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

func orderClauseForPostings(order string) string {
	switch order {
	case "date_asc":
		return ` ORDER BY p.published_at ASC NULLS LAST`
	case "salary_desc":
		return ` ORDER BY p.salary_max DESC NULLS LAST, p.salary_min DESC NULLS LAST`
	case "salary_asc":
		return ` ORDER BY p.salary_min ASC NULLS LAST, p.salary_max ASC NULLS LAST`
	case "relevance":
		return ` ORDER BY p.views DESC, p.published_at DESC NULLS LAST`
	default:
		return ` ORDER BY p.published_at DESC NULLS LAST`
	}
}

func (r *PostgresPostingRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]posting.Detail, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM postings WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		postingDetailSelect+` WHERE p.company_id = $1`+postingDetailGroupBy+
			` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]posting.Detail, 0)
	for rows.Next() {
		d, err := scanPostingDetail(rows)
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

func (r *PostgresPostingRepository) Update(ctx context.Context, p posting.Posting) error {
	n, err := r.db.Exec(ctx,
		`UPDATE postings
		 SET category_id = $2, title = $3, description = $4, requirements = $5,
		     responsibilities = $6, benefits = $7, salary_min = $8, salary_max = $9,
		     currency = $10, location = $11, modality = $12, contract_type = $13,
		     experience_level = $14, vacancies = $15, expires_at = $16,
		     desired_start_date = $17, status = $18, approved_by_admin = $19,
		     approved_at = $20, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.CategoryID, p.Title, p.Description, p.Requirements,
		p.Responsibilities, p.Benefits, p.SalaryMin, p.SalaryMax,
		p.Currency, p.Location, p.Modality, p.ContractType,
		p.ExperienceLevel, p.Vacancies, p.ExpiresAt,
		p.DesiredStartDate, p.Status, p.ApprovedByAdmin, p.ApprovedAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status posting.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE postings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve sets the admin-approval flag. Approval also activates the posting
// and stamps the publication date; rejection only clears the flag.
func (r *PostgresPostingRepository) Approve(ctx context.Context, id uuid.UUID, approved bool) error {
	var n int64
	var err error
	if approved {
		now := time.Now().UTC()
		n, err = r.db.Exec(ctx,
			`UPDATE postings
			 SET approved_by_admin = true, approved_at = $2, status = 'active',
			     published_at = $2, updated_at = now()
			 WHERE id = $1`, id, now)
	} else {
		n, err = r.db.Exec(ctx,
			`UPDATE postings
			 SET approved_by_admin = false, approved_at = NULL, updated_at = now()
			 WHERE id = $1`, id)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostingRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE postings SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresPostingRepository) GeneralStats(ctx context.Context) (posting.GeneralStats, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1),
		        COUNT(CASE WHEN status = 'active' AND approved_by_admin THEN 1 END),
		        COUNT(CASE WHEN status = 'pending_approval' THEN 1 END),
		        COUNT(CASE WHEN published_at >= now() - INTERVAL '7 days' THEN 1 END),
		        AVG(salary_min),
		        AVG(salary_max),
		        COUNT(DISTINCT company_id)
		 FROM postings`)

	var s posting.GeneralStats
	err := row.Scan(
		&s.TotalPostings, &s.ActivePostings, &s.PendingPostings, &s.PostingsThisWeek,
		&s.AvgSalaryMin, &s.AvgSalaryMax, &s.CompaniesWithPostings,
	)
	if err != nil {
		return posting.GeneralStats{}, err
	}
	return s, nil
}

func scanPostingDetail(row database.Row) (posting.Detail, error) {
	var d posting.Detail
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.CategoryID, &d.Title, &d.Description, &d.Requirements,
		&d.Responsibilities, &d.Benefits, &d.SalaryMin, &d.SalaryMax, &d.Currency,
		&d.Location, &d.Modality, &d.ContractType, &d.ExperienceLevel, &d.Vacancies,
		&d.PublishedAt, &d.ExpiresAt, &d.DesiredStartDate, &d.Status,
		&d.ApprovedByAdmin, &d.ApprovedAt, &d.Views, &d.CreatedAt, &d.UpdatedAt,
		&d.CompanyName, &d.CompanyLogoURL, &d.CompanyLocation, &d.CompanyWebsite,
		&d.CategoryName, &d.CategoryIcon,
		&d.TotalApplications, &d.PendingApplications,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posting.Detail{}, ErrNotFound
		}
		return posting.Detail{}, err
	}
	return d, nil
}
