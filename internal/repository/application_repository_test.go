package repository

import (
	"strings"
	"testing"
)

func TestConversionRate(t *testing.T) {
	cases := []struct {
		accepted, total int
		want            float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{10, 10, 100},
		{0, 50, 0},
	}
	for _, c := range cases {
		if got := ConversionRate(c.accepted, c.total); got != c.want {
			t.Fatalf("ConversionRate(%d,%d) = %v, want %v", c.accepted, c.total, got, c.want)
		}
	}
}

func TestApplicationOrderClauses(t *testing.T) {
	if got := orderClauseForApplications("score_desc"); !strings.Contains(got, "match_score DESC") {
		t.Fatalf("unexpected clause %q", got)
	}
	if got := orderClauseForApplications("bogus"); !strings.Contains(got, "submitted_at DESC") {
		t.Fatalf("unknown order must fall back to newest first, got %q", got)
	}
}

func TestPostingOrderClauses(t *testing.T) {
	if got := orderClauseForPostings("salary_asc"); !strings.Contains(got, "salary_min ASC") {
		t.Fatalf("unexpected clause %q", got)
	}
	if got := orderClauseForPostings(""); !strings.Contains(got, "published_at DESC") {
		t.Fatalf("default must be newest first, got %q", got)
	}
}
