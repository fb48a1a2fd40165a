package score

// Outcome selects one of the two SCORE equations.
type Outcome int

const (
	// CHD is fatal coronary heart disease.
	CHD Outcome = iota
	// NonCHD is fatal non-coronary cardiovascular disease.
	NonCHD
)

func (o Outcome) String() string {
	switch o {
	case CHD:
		return "CHD"
	case NonCHD:
		return "non-CHD"
	}
	return "unknown"
}

// CoefficientKey identifies one row of a coefficient table.
type CoefficientKey struct {
	Category RiskCategory
	Sex      Sex
}

// Coefficients are the Weibull scale (Alpha) and shape (P) parameters of the
// baseline survival function.
type Coefficients struct {
	Alpha float64
	P     float64
}

// weights are the linear predictor coefficients for cholesterol, systolic
// blood pressure and smoking.
type weights struct {
	chol  float64
	sbp   float64
	smoke float64
}

// Conroy RM et al., Eur Heart J 2003;24:987-1003, table A.
var coefficientTables = [...]map[CoefficientKey]Coefficients{
	CHD: {
		{LowRisk, Male}:    {Alpha: -22.1, P: 4.71},
		{LowRisk, Female}:  {Alpha: -29.8, P: 6.36},
		{HighRisk, Male}:   {Alpha: -21.0, P: 4.62},
		{HighRisk, Female}: {Alpha: -28.7, P: 6.23},
	},
	NonCHD: {
		{LowRisk, Male}:    {Alpha: -26.7, P: 5.64},
		{LowRisk, Female}:  {Alpha: -31.0, P: 6.62},
		{HighRisk, Male}:   {Alpha: -25.7, P: 5.47},
		{HighRisk, Female}: {Alpha: -30.0, P: 6.42},
	},
}

var predictorWeights = [...]weights{
	CHD:    {chol: 0.24, sbp: 0.018, smoke: 0.71},
	NonCHD: {chol: 0.02, sbp: 0.022, smoke: 0.63},
}

// LookupCoefficients returns the coefficients for the given outcome and key.
// The tables are never exposed directly, so callers always get a copy.
func LookupCoefficients(o Outcome, key CoefficientKey) (Coefficients, error) {
	if o != CHD && o != NonCHD {
		return Coefficients{}, &UnknownCoefficientKeyError{Outcome: o, Key: key}
	}
	c, ok := coefficientTables[o][key]
	if !ok {
		return Coefficients{}, &UnknownCoefficientKeyError{Outcome: o, Key: key}
	}
	return c, nil
}
