package profile

import (
	"testing"

	"jobboard/internal/domain/posting"
)

func strPtr(s string) *string { return &s }

func TestComplete(t *testing.T) {
	full := Profile{
		ProfessionalTitle: strPtr("Backend Engineer"),
		Description:       strPtr("Ten years of services work"),
		Location:          strPtr("Lisbon"),
		ExperienceLevel:   posting.LevelSenior,
	}
	if !full.Complete() {
		t.Fatalf("expected complete profile")
	}

	blankTitle := full
	blankTitle.ProfessionalTitle = strPtr("   ")
	if blankTitle.Complete() {
		t.Fatalf("whitespace title must not count")
	}

	missing := full
	missing.Location = nil
	if missing.Complete() {
		t.Fatalf("missing location must not count")
	}
}
