package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/posting"
)

type Profile struct {
	ID                   uuid.UUID               `json:"id"`
	UserID               uuid.UUID               `json:"user_id"`
	ProfessionalTitle    *string                 `json:"professional_title,omitempty"`
	Description          *string                 `json:"description,omitempty"`
	Location             *string                 `json:"location,omitempty"`
	BirthDate            *time.Time              `json:"birth_date,omitempty"`
	ExperienceLevel      posting.ExperienceLevel `json:"experience_level"`
	ExpectedSalary       *float64                `json:"expected_salary,omitempty"`
	CVURL                *string                 `json:"cv_url,omitempty"`
	CVUploadedAt         *time.Time              `json:"cv_uploaded_at,omitempty"`
	ImmediatelyAvailable bool                    `json:"immediately_available"`
	PreferredModality    posting.Modality        `json:"preferred_modality"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
}

// Complete reports whether the profile carries enough information to be shown
// to employers: title, description, location, and experience level all set.
func (p Profile) Complete() bool {
	filled := func(s *string) bool {
		return s != nil && strings.TrimSpace(*s) != ""
	}
	return filled(p.ProfessionalTitle) &&
		filled(p.Description) &&
		filled(p.Location) &&
		p.ExperienceLevel != ""
}

// Detail joins the profile with its owning user's contact fields.
type Detail struct {
	Profile
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
}
