package domain

// SkillLevel tags a rider's ability for suitability scoring.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// Score rates how well a forecast suits a skill level on a 0-100 scale.
// Deductions are additive from a starting score of 100 and the result is
// clamped to [0,100]. The Beginner bands are mutually exclusive; the two
// Intermediate deductions are independent and can both apply. An
// unrecognized level deducts nothing.
func Score(f Forecast, level SkillLevel) int {
	score := 100

	switch level {
	case SkillBeginner:
		if f.WaveHeight > 1.5 {
			score -= 60
		} else if f.WaveHeight > 1.0 {
			score -= 30
		}
	case SkillIntermediate:
		if f.WaveHeight < 1.0 {
			score -= 20
		}
		if f.WaveHeight > 2.5 {
			score -= 40
		}
	case SkillAdvanced:
		if f.WaveHeight < 1.8 {
			score -= 30
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
