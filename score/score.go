// Package score implements the SCORE 10-year risk of fatal cardiovascular
// disease (Conroy et al. 2003) for patients aged 40 to 65.
//
// The package is pure: it performs no I/O, keeps no mutable state and is safe
// for concurrent use.
package score

// ComputeRisk normalizes the input and, if the normalized values are usable,
// calculates the risk.  The returned Assessment always carries the
// diagnostics.  When calculation is refused, Result is nil and the error
// wraps ErrUnrecoverable.
func ComputeRisk(in PatientInput) (*Assessment, error) {
	normalized, diag := Normalize(in)
	assessment := &Assessment{
		Input:       in,
		Normalized:  normalized,
		Diagnostics: diag,
	}

	result, err := Calculate(normalized)
	if err != nil {
		return assessment, err
	}
	assessment.Result = &result
	return assessment, nil
}

// Refused reports whether the assessment has no usable result.
func (a *Assessment) Refused() bool {
	return a.Result == nil
}

// Corrected reports whether a result was produced from clamped inputs.
func (a *Assessment) Corrected() bool {
	return a.Result != nil && !a.Diagnostics.Empty()
}
