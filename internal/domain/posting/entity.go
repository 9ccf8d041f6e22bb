package posting

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusActive          Status = "active"
	StatusPaused          Status = "paused"
	StatusExpired         Status = "expired"
	StatusClosed          Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusActive, StatusPaused, StatusExpired, StatusClosed:
		return true
	}
	return false
}

type Modality string

const (
	ModalityOnSite Modality = "on_site"
	ModalityRemote Modality = "remote"
	ModalityHybrid Modality = "hybrid"
)

func (m Modality) Valid() bool {
	switch m {
	case ModalityOnSite, ModalityRemote, ModalityHybrid:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	LevelNone       ExperienceLevel = "none"
	LevelJunior     ExperienceLevel = "junior"
	LevelSemiSenior ExperienceLevel = "semi_senior"
	LevelSenior     ExperienceLevel = "senior"
	LevelLead       ExperienceLevel = "lead"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelNone, LevelJunior, LevelSemiSenior, LevelSenior, LevelLead:
		return true
	}
	return false
}

type Posting struct {
	ID               uuid.UUID       `json:"id"`
	CompanyID        uuid.UUID       `json:"company_id"`
	CategoryID       uuid.UUID       `json:"category_id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Requirements     *string         `json:"requirements,omitempty"`
	Responsibilities *string         `json:"responsibilities,omitempty"`
	Benefits         *string         `json:"benefits,omitempty"`
	SalaryMin        *float64        `json:"salary_min,omitempty"`
	SalaryMax        *float64        `json:"salary_max,omitempty"`
	Currency         string          `json:"currency"`
	Location         *string         `json:"location,omitempty"`
	Modality         Modality        `json:"modality"`
	ContractType     string          `json:"contract_type"`
	ExperienceLevel  ExperienceLevel `json:"experience_level"`
	Vacancies        int             `json:"vacancies"`
	PublishedAt      *time.Time      `json:"published_at,omitempty"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	DesiredStartDate *time.Time      `json:"desired_start_date,omitempty"`
	Status           Status          `json:"status"`
	ApprovedByAdmin  bool            `json:"approved_by_admin"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	Views            int64           `json:"views"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PubliclyVisible reports whether the posting may be shown to and applied by
// applicants. Both conditions are required; admin approval is tracked
// independently of the status.
func (p Posting) PubliclyVisible() bool {
	return p.Status == StatusActive && p.ApprovedByAdmin
}

// Detail is a posting joined with the owning company, its category, and
// application counters.
type Detail struct {
	Posting
	CompanyName         string  `json:"company_name"`
	CompanyLogoURL      *string `json:"company_logo_url,omitempty"`
	CompanyLocation     *string `json:"company_location,omitempty"`
	CompanyWebsite      *string `json:"company_website,omitempty"`
	CategoryName        string  `json:"category_name"`
	CategoryIcon        *string `json:"category_icon,omitempty"`
	TotalApplications   int     `json:"total_applications"`
	PendingApplications int     `json:"pending_applications"`
}

type GeneralStats struct {
	TotalPostings         int      `json:"total_postings"`
	ActivePostings        int      `json:"active_postings"`
	PendingPostings       int      `json:"pending_postings"`
	PostingsThisWeek      int      `json:"postings_this_week"`
	AvgSalaryMin          *float64 `json:"avg_salary_min,omitempty"`
	AvgSalaryMax          *float64 `json:"avg_salary_max,omitempty"`
	CompaniesWithPostings int      `json:"companies_with_postings"`
}
