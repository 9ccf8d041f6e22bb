package application

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/posting"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusInReview    Status = "in_review"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// Valid reports whether s is one of the six recognized states. Transitions
// between valid states are otherwise unconstrained: employers may move an
// application backward as well as forward.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusShortlisted, StatusInterview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// WithdrawalBlocked reports whether an applicant may no longer withdraw:
// once an interview is scheduled or the offer accepted, the employer has
// invested in the candidate.
func (s Status) WithdrawalBlocked() bool {
	return s == StatusInterview || s == StatusAccepted
}

// WithdrawnNote marks an applicant-initiated withdrawal. Storage-wise a
// withdrawal is a transition to rejected; only this note distinguishes it
// from an employer rejection.
const WithdrawnNote = "Application withdrawn by the candidate"

type Application struct {
	ID              uuid.UUID  `json:"id"`
	PostingID       uuid.UUID  `json:"posting_id"`
	ProfileID       uuid.UUID  `json:"profile_id"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	Status          Status     `json:"status"`
	CoverLetter     *string    `json:"cover_letter,omitempty"`
	CVURL           *string    `json:"cv_url,omitempty"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
	EmployerNotes   *string    `json:"employer_notes,omitempty"`
	MatchScore      *int       `json:"match_score,omitempty"`
}

// Detail joins an application with posting, company, and applicant fields for
// the read endpoints.
type Detail struct {
	Application
	PostingTitle    string                  `json:"posting_title"`
	PostingLocation *string                 `json:"posting_location,omitempty"`
	PostingModality posting.Modality        `json:"posting_modality"`
	PostingStatus   posting.Status          `json:"posting_status"`
	SalaryMin       *float64                `json:"salary_min,omitempty"`
	SalaryMax       *float64                `json:"salary_max,omitempty"`
	CompanyID       uuid.UUID               `json:"company_id"`
	CompanyName     string                  `json:"company_name"`
	CompanyLogoURL  *string                 `json:"company_logo_url,omitempty"`
	CategoryName    string                  `json:"category_name"`
	ApplicantName   string                  `json:"applicant_name"`
	ApplicantEmail  string                  `json:"applicant_email"`
	ApplicantPhone  *string                 `json:"applicant_phone,omitempty"`
	ApplicantTitle  *string                 `json:"applicant_title,omitempty"`
	ApplicantLevel  posting.ExperienceLevel `json:"applicant_level"`
	ExpectedSalary  *float64                `json:"expected_salary,omitempty"`
}

type PostingStats struct {
	Total       int      `json:"total"`
	Pending     int      `json:"pending"`
	InReview    int      `json:"in_review"`
	Shortlisted int      `json:"shortlisted"`
	Interview   int      `json:"interview"`
	Accepted    int      `json:"accepted"`
	Rejected    int      `json:"rejected"`
	AvgScore    *float64 `json:"avg_score,omitempty"`
	BestScore   *int     `json:"best_score,omitempty"`
}

type GeneralStats struct {
	Total                   int      `json:"total"`
	SuccessfulHires         int      `json:"successful_hires"`
	LastSevenDays           int      `json:"last_seven_days"`
	LastThirtyDays          int      `json:"last_thirty_days"`
	AvgScore                *float64 `json:"avg_score,omitempty"`
	ActiveApplicants        int      `json:"active_applicants"`
	PostingsWithApplication int      `json:"postings_with_applications"`
	ConversionRate          float64  `json:"conversion_rate"`
}
