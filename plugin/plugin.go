package plugin

import (
	"sort"
	"time"

	"github.com/kgrid-demos/score/score"
	"gopkg.in/mgo.v2/bson"
)

// RiskServicePlugin provides the interface that risk service plugins should
// adhere to.  Plugins are handed a patient's event stream and report how the
// patient's risk evolved over it.
type RiskServicePlugin interface {
	// Config returns the configuration information for the risk service plugin
	Config() RiskServicePluginConfig
	// Calculate accepts an EventStream and returns the slice of
	// RiskServiceCalculationResults that corresponds to the event stream.  This
	// results slice represents risks over time, with the last element being the
	// most recent risk assessment.
	Calculate(es *EventStream) ([]RiskServiceCalculationResult, error)
}

// Coding identifies a concept within a code system.
type Coding struct {
	System string `bson:"system" json:"system"`
	Code   string `bson:"code" json:"code"`
}

// CodeableConcept is a set of codings with a human readable label.
type CodeableConcept struct {
	Coding []Coding `bson:"coding" json:"coding"`
	Text   string   `bson:"text" json:"text"`
}

// RiskServicePluginConfig represents key information about the risk service plugin.
type RiskServicePluginConfig struct {
	Name                 string
	Method               CodeableConcept
	PredictedOutcome     string
	DefaultPieSlices     []Slice
	SignificantBirthdays []int
}

// RiskServiceCalculationResult represents risk assessment info for a given point
// in time.  ProbabilityDecimal is a percentage probability of the predicted
// outcome, so it never exceeds 100.  Diagnostics carries any corrections that
// were applied to the inputs of the calculation.
type RiskServiceCalculationResult struct {
	AsOf               time.Time
	ProbabilityDecimal *float64
	Pie                *Pie
	Diagnostics        score.Diagnostics
}

// Prediction is the predicted outcome of a risk assessment.
type Prediction struct {
	Outcome            string   `bson:"outcome" json:"outcome"`
	ProbabilityDecimal *float64 `bson:"probabilityDecimal,omitempty" json:"probabilityDecimal,omitempty"`
}

// RiskAssessment is the persisted form of a calculation result.  Its basis
// points back to the pie that explains the score.
type RiskAssessment struct {
	Id          bson.ObjectId     `bson:"_id" json:"id"`
	Patient     string            `bson:"patient" json:"patient"`
	Method      CodeableConcept   `bson:"method" json:"method"`
	Date        time.Time         `bson:"date" json:"date"`
	Prediction  []Prediction      `bson:"prediction" json:"prediction"`
	Basis       []string          `bson:"basis" json:"basis"`
	Diagnostics score.Diagnostics `bson:"diagnostics,omitempty" json:"diagnostics,omitempty"`
	MostRecent  bool              `bson:"mostRecent" json:"mostRecent"`
}

// ToRiskAssessment converts the RiskServiceCalculationResult to a RiskAssessment.
func (r *RiskServiceCalculationResult) ToRiskAssessment(patientId string, basisPieURL string, config RiskServicePluginConfig) *RiskAssessment {
	return &RiskAssessment{
		Id:      bson.NewObjectId(),
		Patient: patientId,
		Method:  config.Method,
		Date:    r.AsOf,
		Prediction: []Prediction{
			{
				Outcome:            config.PredictedOutcome,
				ProbabilityDecimal: r.ProbabilityDecimal,
			},
		},
		Basis:       []string{basisPieURL + "/" + r.Pie.Id.Hex()},
		Diagnostics: r.Diagnostics,
	}
}

// SortResultsByAsOfDate sorts the results by their as-of date
func SortResultsByAsOfDate(results []RiskServiceCalculationResult) {
	// Stable sort to preserve original order when dates are the same
	sort.Stable(byAsOfDate(results))
}

type byAsOfDate []RiskServiceCalculationResult

func (d byAsOfDate) Len() int {
	return len(d)
}
func (d byAsOfDate) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}
func (d byAsOfDate) Less(i, j int) bool {
	return d[i].AsOf.Before(d[j].AsOf)
}

// NotApplicableError indicates that the given algorithm is not applicable
// for the requested patient.  It would be inappropriate to return a score.
type NotApplicableError struct {
	msg string
}

// NewNotApplicableError returns a new NotApplicableError with the given
// message.
func NewNotApplicableError(msg string) NotApplicableError {
	return NotApplicableError{msg: msg}
}

func (e NotApplicableError) Error() string { return e.msg }
