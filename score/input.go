package score

// Sex is the patient's sex as used to select SCORE coefficients.
type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

// ParseSex accepts exactly "M" or "F".
func ParseSex(s string) (Sex, bool) {
	switch Sex(s) {
	case Male, Female:
		return Sex(s), true
	}
	return "", false
}

// RiskCategory is the baseline risk region of the population the patient
// belongs to.  SCORE publishes one coefficient set for low-risk and one for
// high-risk European regions.
type RiskCategory string

const (
	LowRisk  RiskCategory = "low"
	HighRisk RiskCategory = "high"
)

// ParseRiskCategory accepts exactly "low" or "high".
func ParseRiskCategory(s string) (RiskCategory, bool) {
	switch RiskCategory(s) {
	case LowRisk, HighRisk:
		return RiskCategory(s), true
	}
	return "", false
}

// Field names used as Diagnostics keys.
const (
	FieldAge   = "age"
	FieldSex   = "sex"
	FieldSBP   = "sbp"
	FieldChol  = "chol"
	FieldSmoke = "smoke"
	FieldRisk  = "risk"
)

// Valid domains of the model.  Boundaries are inclusive.
const (
	MinAge  = 40
	MaxAge  = 65
	MinSBP  = 120.0
	MaxSBP  = 180.0
	MinChol = 4.0
	MaxChol = 8.0

	// Ages strictly inside (rejectBelowAge, MinAge) or (MaxAge, rejectAboveAge)
	// are clamped; anything at or beyond these limits is refused.
	rejectBelowAge = 30
	rejectAboveAge = 90
)

// PatientInput holds the six clinical inputs as supplied by the caller.
type PatientInput struct {
	Age   int     `json:"age"`
	Sex   string  `json:"sex"`
	SBP   float64 `json:"sbp"`
	Chol  float64 `json:"chol"`
	Smoke int     `json:"smoke"`
	Risk  string  `json:"risk"`
}

// NormalizedInput is a PatientInput after range clamping.  Every field is
// inside its valid domain unless the accompanying Diagnostics say otherwise.
type NormalizedInput PatientInput

// Diagnostics maps a field name to a human readable description of the
// correction applied to it, or of why it could not be used.
type Diagnostics map[string]string

// Empty reports whether no correction or rejection was recorded.
func (d Diagnostics) Empty() bool {
	return len(d) == 0
}

// RiskResult holds the three 10-year risk fractions, each rounded to
// 9 decimal places.
type RiskResult struct {
	CHDRisk    float64 `json:"CHDRisk"`
	NonCHDRisk float64 `json:"nonCHDRisk"`
	TotalRisk  float64 `json:"totalRisk"`
}

// Assessment is the combined outcome of a ComputeRisk call.  Result is nil
// when the normalized inputs could not be used for calculation.
type Assessment struct {
	Input       PatientInput    `json:"input"`
	Normalized  NormalizedInput `json:"normalized"`
	Diagnostics Diagnostics     `json:"diagnostics"`
	Result      *RiskResult     `json:"result,omitempty"`
}
