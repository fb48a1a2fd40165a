package score

import (
	"fmt"
	"math"
)

// Normalize checks each field of in against its valid domain.  Correctable
// values are clamped into range; uncorrectable ones are left untouched.  Every
// correction or rejection is described in the returned Diagnostics.  Fields
// are checked independently, so several diagnostics may be returned at once.
func Normalize(in PatientInput) (NormalizedInput, Diagnostics) {
	out := NormalizedInput(in)
	diag := Diagnostics{}

	switch {
	case in.Age > MaxAge && in.Age < rejectAboveAge:
		out.Age = MaxAge
		diag[FieldAge] = clampedMessage("Age", MinAge, MaxAge, MaxAge)
	case in.Age < MinAge && in.Age > rejectBelowAge:
		out.Age = MinAge
		diag[FieldAge] = clampedMessage("Age", MinAge, MaxAge, MinAge)
	case in.Age <= rejectBelowAge || in.Age >= rejectAboveAge:
		diag[FieldAge] = fmt.Sprintf("ERROR: Input out of range. Age must be within %d to %d inclusive.", MinAge, MaxAge)
	}

	if _, ok := ParseSex(in.Sex); !ok {
		diag[FieldSex] = "ERROR: Input invalid. Sex must be 'M' or 'F'."
	}

	out.SBP = clampField(diag, FieldSBP, "SBP", in.SBP, MinSBP, MaxSBP)
	out.Chol = clampField(diag, FieldChol, "Cholesterol", in.Chol, MinChol, MaxChol)

	if in.Smoke != 0 && in.Smoke != 1 {
		diag[FieldSmoke] = "ERROR: Input invalid. Smoke status must be 0 for nonsmoker and 1 for smoker."
	}

	if _, ok := ParseRiskCategory(in.Risk); !ok {
		diag[FieldRisk] = "ERROR: Input invalid. Risk must be 'low' or 'high'."
	}

	return out, diag
}

func clampField(diag Diagnostics, field, label string, v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		diag[field] = fmt.Sprintf("ERROR: Input invalid. %s must be a number.", label)
	case v > hi:
		diag[field] = clampedMessage(label, lo, hi, hi)
		return hi
	case v < lo:
		diag[field] = clampedMessage(label, lo, hi, lo)
		return lo
	}
	return v
}

func clampedMessage(label string, lo, hi, setTo float64) string {
	return fmt.Sprintf("ERROR: Input out of range. %s must be within %v to %v inclusive. %s set to %v by default.",
		label, lo, hi, label, setTo)
}
