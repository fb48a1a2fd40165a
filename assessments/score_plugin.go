package assessments

import (
	"fmt"
	"time"

	"github.com/kgrid-demos/score/plugin"
	"github.com/kgrid-demos/score/score"
)

// LOINC codes of the measurements the SCORE plugin reads.
const (
	SystolicBloodPressureCode = "8480-6"
	TotalCholesterolCode      = "2093-3"
	SmokingStatusCode         = "72166-2"
)

// Pie slice names.
const (
	AgeSlice           = "Age"
	BloodPressureSlice = "Systolic Blood Pressure"
	CholesterolSlice   = "Cholesterol"
	SmokingSlice       = "Smoking"
)

// SCOREPlugin is a risk calculation service implementing the SCORE 10-year
// risk of fatal cardiovascular disease for patients aged 40 to 65:
// https://doi.org/10.1016/S0195-668X(03)00114-3
type SCOREPlugin struct {
	Region score.RiskCategory
}

// NewSCOREPlugin returns a new SCOREPlugin that uses the given baseline risk
// region for patients that do not specify their own.
func NewSCOREPlugin(region score.RiskCategory) *SCOREPlugin {
	return &SCOREPlugin{Region: region}
}

// Config provides the configuration parameters for the SCOREPlugin
func (p *SCOREPlugin) Config() plugin.RiskServicePluginConfig {
	birthdays := make([]int, 0, score.MaxAge-score.MinAge+1)
	for age := score.MinAge; age <= score.MaxAge; age++ {
		birthdays = append(birthdays, age)
	}
	return plugin.RiskServicePluginConfig{
		Name: "SCORE 10-year CVD risk",
		Method: plugin.CodeableConcept{
			Coding: []plugin.Coding{{System: "http://interventionengine.org/risk-assessments", Code: "SCORE"}},
			Text:   "SCORE 10-year CVD risk",
		},
		PredictedOutcome: "Fatal cardiovascular disease within 10 years",
		DefaultPieSlices: []plugin.Slice{
			{Name: AgeSlice, Weight: 40, MaxValue: 5},
			{Name: BloodPressureSlice, Weight: 20, MaxValue: 3},
			{Name: CholesterolSlice, Weight: 20, MaxValue: 4},
			{Name: SmokingSlice, Weight: 20, MaxValue: 1},
		},
		SignificantBirthdays: birthdays,
	}
}

// Calculate takes a stream of events and returns a slice of corresponding risk calculation results.  A result is
// produced for every event that changes a risk factor once blood pressure, cholesterol and smoking status are all
// known.
func (p *SCOREPlugin) Calculate(es *plugin.EventStream) ([]plugin.RiskServiceCalculationResult, error) {
	patient := es.Patient
	if patient == nil {
		return nil, plugin.NewNotApplicableError("SCORE requires patient demographics")
	}
	if _, ok := score.ParseSex(patient.Sex); !ok {
		return nil, plugin.NewNotApplicableError(fmt.Sprintf("SCORE is not applicable to patients of sex %q", patient.Sex))
	}
	if patient.BirthDate == nil {
		return nil, plugin.NewNotApplicableError("SCORE requires the patient's birth date")
	}
	region := p.Region
	if patient.RiskRegion != "" {
		r, ok := score.ParseRiskCategory(patient.RiskRegion)
		if !ok {
			return nil, fmt.Errorf("unknown risk region %q for patient %s", patient.RiskRegion, patient.Id)
		}
		region = r
	}

	var results []plugin.RiskServiceCalculationResult
	var sbp, chol *float64
	var smoke *int

	pie := plugin.NewPie(plugin.PatientReference(patient.Id))
	pie.Slices = p.Config().DefaultPieSlices

	for _, event := range es.Events {
		// NOTE: guard against future dates (for example, our patient generator can create future events)
		if event.End || event.Date.After(time.Now()) {
			continue
		}

		switch event.Type {
		case plugin.ObservationEvent:
			m, ok := event.Value.(*plugin.Measurement)
			if !ok {
				continue
			}
			v := m.Value
			switch m.Code {
			case SystolicBloodPressureCode:
				sbp = &v
			case TotalCholesterolCode:
				chol = &v
			case SmokingStatusCode:
				s := 0
				if v != 0 {
					s = 1
				}
				smoke = &s
			default:
				continue
			}
		case plugin.AgeEvent:
		default:
			continue
		}

		if sbp == nil || chol == nil || smoke == nil {
			continue
		}

		assessment, err := score.ComputeRisk(score.PatientInput{
			Age:   Age(*patient.BirthDate, event.Date),
			Sex:   patient.Sex,
			SBP:   *sbp,
			Chol:  *chol,
			Smoke: *smoke,
			Risk:  string(region),
		})
		if err != nil {
			// Outside the modelled age band; nothing to report for this point in time
			continue
		}

		pie = pie.Clone(true)
		updatePie(pie, assessment.Normalized)
		percent := score.Round(assessment.Result.TotalRisk * 100)
		results = append(results, plugin.RiskServiceCalculationResult{
			AsOf:               event.Date,
			ProbabilityDecimal: &percent,
			Pie:                pie,
			Diagnostics:        assessment.Diagnostics,
		})
	}

	if len(results) == 0 {
		return nil, plugin.NewNotApplicableError("SCORE requires blood pressure, cholesterol and smoking status between ages 31 and 89")
	}
	return results, nil
}

func updatePie(pie *plugin.Pie, in score.NormalizedInput) {
	pie.UpdateSliceValue(AgeSlice, (in.Age-score.MinAge)/5)
	pie.UpdateSliceValue(BloodPressureSlice, int((in.SBP-score.MinSBP)/20))
	pie.UpdateSliceValue(CholesterolSlice, int(in.Chol-score.MinChol))
	pie.UpdateSliceValue(SmokingSlice, in.Smoke)
}

// Age returns the patient's age in whole years at the given time.
func Age(birthDate, ts time.Time) int {
	age := ts.Year() - birthDate.Year()
	if ts.Month() < birthDate.Month() || (ts.Month() == birthDate.Month() && ts.Day() < birthDate.Day()) {
		age--
	}
	return age
}
