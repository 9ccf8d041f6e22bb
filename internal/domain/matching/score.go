package matching

import (
	"math"

	"jobboard/internal/domain/posting"
)

// Factor weights. The profile-depth factor is a fixed placeholder until
// structured CV analysis exists; keep it a named constant rather than an
// inferred algorithm.
const (
	experienceWeight   = 30.0
	salaryWeight       = 20.0
	modalityFull       = 15.0
	modalityPartial    = 10.0
	salaryFallback     = 10.0

	// ProfileDepthScore is the flat CV/profile factor.
	ProfileDepthScore = 25.0
)

// ordinal points per experience level; unknown applicant levels score 0 and
// unknown required levels fall back to junior.
var experiencePoints = map[posting.ExperienceLevel]float64{
	posting.LevelNone:       0,
	posting.LevelJunior:     25,
	posting.LevelSemiSenior: 50,
	posting.LevelSenior:     75,
	posting.LevelLead:       100,
}

type Factors struct {
	ApplicantLevel posting.ExperienceLevel
	RequiredLevel  posting.ExperienceLevel
	ExpectedSalary *float64
	SalaryMax      *float64
	Modality       posting.Modality
}

// Score computes the 0..100 match score as a weighted sum: experience fit 30,
// salary fit 20, modality fit 15, profile depth 25 (flat). Deterministic for
// fixed inputs.
func Score(f Factors) int {
	total := experienceScore(f.ApplicantLevel, f.RequiredLevel) +
		salaryScore(f.ExpectedSalary, f.SalaryMax) +
		modalityScore(f.Modality) +
		ProfileDepthScore

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func experienceScore(applicant, required posting.ExperienceLevel) float64 {
	req, ok := experiencePoints[required]
	if !ok {
		req = experiencePoints[posting.LevelJunior]
	}
	cand := experiencePoints[applicant]

	if cand >= req {
		return experienceWeight
	}
	// req > cand >= 0 here, so req > 0.
	return experienceWeight * (cand / req)
}

func salaryScore(expected, max *float64) float64 {
	if expected == nil || max == nil {
		return salaryFallback
	}
	if *expected <= *max {
		return salaryWeight
	}
	excess := (*expected - *max) / *max * 100
	s := salaryWeight - excess
	if s < 0 {
		return 0
	}
	return s
}

func modalityScore(m posting.Modality) float64 {
	// Remote postings are location-compatible with any applicant; everything
	// else gets a flat partial score pending a real compatibility check.
	if m == posting.ModalityRemote {
		return modalityFull
	}
	return modalityPartial
}
