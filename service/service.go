package service

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/kgrid-demos/score/logging"
	"github.com/kgrid-demos/score/plugin"
)

var (
	errMissingPatientID = errors.New("patient record has no patient id")
	errMissingCoding    = errors.New("risk assessment plugins must provide a method with a coding")
)

// RiskService is an interface for the functions that must be supported by a risk service used in our
// reference implementation risk service server.
type RiskService interface {
	Calculate(record *PatientRecord, basisPieURL string) error
}

// ReferenceRiskService is a container for risk service plugins that can handle the details of turning a patient
// record into the data needed by the plugins, invoking the calculations on the plugins, and saving the resulting
// risk assessments and pies to the store.
type ReferenceRiskService struct {
	plugins []plugin.RiskServicePlugin
	store   AssessmentStore
	log     *log.Logger
}

// NewReferenceRiskService creates a new risk service backed by the passed in store
func NewReferenceRiskService(store AssessmentStore) *ReferenceRiskService {
	return &ReferenceRiskService{store: store, log: logging.Logger(logging.SourceService)}
}

// RegisterPlugin registers a plugin for use by the risk service
func (rs *ReferenceRiskService) RegisterPlugin(p plugin.RiskServicePlugin) {
	rs.plugins = append(rs.plugins, p)
}

// Plugins returns the registered plugins in registration order.
func (rs *ReferenceRiskService) Plugins() []plugin.RiskServicePlugin {
	return rs.plugins
}

// Calculate invokes the registered plugins on the patient record and stores the results.  This deletes all
// previous risk assessments and pies for the patient and method and replaces them with the new ones.  When a
// plugin is not applicable to the patient, its previous results are deleted and nothing replaces them.
func (rs *ReferenceRiskService) Calculate(record *PatientRecord, basisPieURL string) error {
	es, err := RecordToEventStream(record)
	if err != nil {
		return err
	}
	patientID := es.Patient.Id

	for _, p := range rs.plugins {
		config := p.Config()
		if len(config.Method.Coding) == 0 {
			return errMissingCoding
		}

		// Copy the event stream since we'll add significant birthday events based on plugin config
		esClone := es.Clone()
		addSignificantBirthdayEvents(esClone, config.SignificantBirthdays)

		results, err := p.Calculate(esClone)
		if err != nil {
			var na plugin.NotApplicableError
			if !errors.As(err, &na) {
				return err
			}
			rs.log.Debug("plugin not applicable", "plugin", config.Name, "patient", patientID, "reason", err)
			results = nil
		}
		results = sortAndConsolidate(results)

		assessments := make([]*plugin.RiskAssessment, len(results))
		pies := make([]*plugin.Pie, len(results))
		for i := range results {
			assessments[i] = results[i].ToRiskAssessment(patientID, basisPieURL, config)
			assessments[i].MostRecent = i == len(results)-1
			pies[i] = results[i].Pie
		}
		if err := rs.store.ReplaceAssessments(patientID, config.Method, assessments, pies); err != nil {
			return err
		}
		rs.log.Info("stored risk assessments", "plugin", config.Name, "patient", patientID, "count", len(assessments))
	}

	return nil
}

// sortAndConsolidate sorts calculations by date and then consolidates the ones that have the same timestamp into one,
// choosing whichever was last in the original order
func sortAndConsolidate(results []plugin.RiskServiceCalculationResult) []plugin.RiskServiceCalculationResult {
	// Use stable sort to retain original order on equal elements
	plugin.SortResultsByAsOfDate(results)
	for i := 0; i < len(results); i++ {
		if i > 0 && results[i].AsOf.Equal(results[i-1].AsOf) {
			results = append(results[:(i-1)], results[i:]...)
			i--
		}
	}
	return results
}
