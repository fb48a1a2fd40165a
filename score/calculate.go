package score

import (
	"math"
)

// Survival is evaluated at the current age (offset 20) and ten years later
// (offset 10) on the model's age-20 time scale.
const (
	baselineOffset = 20.0
	horizonOffset  = 10.0
)

// Calculate evaluates both SCORE equations for a normalized input and returns
// the rounded risk fractions.  It refuses inputs that normalization could not
// bring into the modelled domain rather than computing with them.
func Calculate(in NormalizedInput) (RiskResult, error) {
	key, err := coefficientKey(in)
	if err != nil {
		return RiskResult{}, err
	}
	if err := checkDomain(in); err != nil {
		return RiskResult{}, err
	}

	chd, err := outcomeRisk(CHD, key, in)
	if err != nil {
		return RiskResult{}, err
	}
	nonCHD, err := outcomeRisk(NonCHD, key, in)
	if err != nil {
		return RiskResult{}, err
	}

	return RiskResult{
		CHDRisk:    Round(chd),
		NonCHDRisk: Round(nonCHD),
		TotalRisk:  Round(chd + nonCHD),
	}, nil
}

func coefficientKey(in NormalizedInput) (CoefficientKey, error) {
	sex, sexOK := ParseSex(in.Sex)
	category, categoryOK := ParseRiskCategory(in.Risk)
	if !sexOK || !categoryOK {
		return CoefficientKey{}, &UnknownCoefficientKeyError{
			Outcome: CHD,
			Key:     CoefficientKey{Category: RiskCategory(in.Risk), Sex: Sex(in.Sex)},
		}
	}
	return CoefficientKey{Category: category, Sex: sex}, nil
}

func checkDomain(in NormalizedInput) error {
	if in.Age < MinAge || in.Age > MaxAge {
		return &RangeError{Field: FieldAge, Value: float64(in.Age), Min: MinAge, Max: MaxAge}
	}
	if !inRange(in.SBP, MinSBP, MaxSBP) {
		return &RangeError{Field: FieldSBP, Value: in.SBP, Min: MinSBP, Max: MaxSBP}
	}
	if !inRange(in.Chol, MinChol, MaxChol) {
		return &RangeError{Field: FieldChol, Value: in.Chol, Min: MinChol, Max: MaxChol}
	}
	if in.Smoke != 0 && in.Smoke != 1 {
		return &InvalidInputError{Field: FieldSmoke, Value: in.Smoke}
	}
	return nil
}

// inRange is false for NaN.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func outcomeRisk(o Outcome, key CoefficientKey, in NormalizedInput) (float64, error) {
	c, err := LookupCoefficients(o, key)
	if err != nil {
		return 0, err
	}
	w := predictorWeights[o]
	lp := w.chol*(in.Chol-6) + w.sbp*(in.SBP-120) + w.smoke*float64(in.Smoke)

	age := float64(in.Age)
	now := survival(c, age-baselineOffset, lp)
	later := survival(c, age-horizonOffset, lp)
	return 1 - later/now, nil
}

// survival is S0(t)^exp(lp) with S0(t) = exp(-exp(alpha) * t^p).
func survival(c Coefficients, t, lp float64) float64 {
	s0 := math.Exp(-math.Exp(c.Alpha) * math.Pow(t, c.P))
	return math.Pow(s0, math.Exp(lp))
}

// Round rounds x to 9 decimal places, half away from zero.
func Round(x float64) float64 {
	return math.Round(x*1e9) / 1e9
}
