package matching

import (
	"testing"

	"jobboard/internal/domain/posting"
)

func f64(v float64) *float64 { return &v }

func TestScore_SeniorRemoteWithinBudget(t *testing.T) {
	// Exp 30 (senior >= semi_senior) + salary 20 + remote 15 + depth 25 = 90.
	got := Score(Factors{
		ApplicantLevel: posting.LevelSenior,
		RequiredLevel:  posting.LevelSemiSenior,
		ExpectedSalary: f64(50000),
		SalaryMax:      f64(60000),
		Modality:       posting.ModalityRemote,
	})
	if got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
}

func TestScore_Deterministic(t *testing.T) {
	f := Factors{
		ApplicantLevel: posting.LevelJunior,
		RequiredLevel:  posting.LevelSenior,
		ExpectedSalary: f64(70000),
		SalaryMax:      f64(60000),
		Modality:       posting.ModalityHybrid,
	}
	first := Score(f)
	for i := 0; i < 10; i++ {
		if got := Score(f); got != first {
			t.Fatalf("score not deterministic: %d vs %d", got, first)
		}
	}
}

func TestScore_PartialExperience(t *testing.T) {
	// junior(25) vs senior(75): 30 * 25/75 = 10; salary 20; on_site 10; depth 25.
	got := Score(Factors{
		ApplicantLevel: posting.LevelJunior,
		RequiredLevel:  posting.LevelSenior,
		ExpectedSalary: f64(30000),
		SalaryMax:      f64(40000),
		Modality:       posting.ModalityOnSite,
	})
	if got != 65 {
		t.Fatalf("expected 65, got %d", got)
	}
}

func TestScore_MissingSalaryUsesFallback(t *testing.T) {
	withSalary := Score(Factors{
		ApplicantLevel: posting.LevelLead,
		RequiredLevel:  posting.LevelLead,
		ExpectedSalary: f64(10),
		SalaryMax:      f64(100),
		Modality:       posting.ModalityRemote,
	})
	noSalary := Score(Factors{
		ApplicantLevel: posting.LevelLead,
		RequiredLevel:  posting.LevelLead,
		Modality:       posting.ModalityRemote,
	})
	if withSalary != 90 {
		t.Fatalf("expected 90 with salary, got %d", withSalary)
	}
	if noSalary != 80 {
		t.Fatalf("expected 80 with fallback, got %d", noSalary)
	}
}

func TestScore_UnknownRequiredLevelFallsBackToJunior(t *testing.T) {
	// Applicant junior matches the junior fallback, so the experience factor
	// is the full 30.
	got := Score(Factors{
		ApplicantLevel: posting.LevelJunior,
		RequiredLevel:  posting.ExperienceLevel("unheard_of"),
		ExpectedSalary: f64(10),
		SalaryMax:      f64(100),
		Modality:       posting.ModalityRemote,
	})
	if got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
}

func TestScore_SalaryOverBudgetDegrades(t *testing.T) {
	// 72000 over a 60000 max is 20% excess: salary factor 0.
	got := Score(Factors{
		ApplicantLevel: posting.LevelSenior,
		RequiredLevel:  posting.LevelSenior,
		ExpectedSalary: f64(72000),
		SalaryMax:      f64(60000),
		Modality:       posting.ModalityRemote,
	})
	if got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
}

func TestScore_ClampedToRange(t *testing.T) {
	got := Score(Factors{
		ApplicantLevel: posting.LevelNone,
		RequiredLevel:  posting.LevelLead,
		ExpectedSalary: f64(200000),
		SalaryMax:      f64(50000),
		Modality:       posting.ModalityOnSite,
	})
	if got < 0 || got > 100 {
		t.Fatalf("score out of range: %d", got)
	}
}
