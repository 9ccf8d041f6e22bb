package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	TaxID       *string   `json:"tax_id,omitempty"`
	Description *string   `json:"description,omitempty"`
	Sector      *string   `json:"sector,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Website     *string   `json:"website,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	CompanySize string    `json:"company_size"`
	Phone       *string   `json:"phone,omitempty"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
