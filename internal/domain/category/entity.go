package category

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Icon         *string   `json:"icon,omitempty"`
	Active       bool      `json:"active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// WithCounts augments a category with posting counters for listing views.
type WithCounts struct {
	Category
	TotalPostings  int `json:"total_postings"`
	ActivePostings int `json:"active_postings"`
}

type Stats struct {
	TotalPostings     int      `json:"total_postings"`
	ActivePostings    int      `json:"active_postings"`
	PausedPostings    int      `json:"paused_postings"`
	ClosedPostings    int      `json:"closed_postings"`
	TotalApplications int      `json:"total_applications"`
	AvgSalaryMin      *float64 `json:"avg_salary_min,omitempty"`
	AvgSalaryMax      *float64 `json:"avg_salary_max,omitempty"`
}
