package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kgrid-demos/score/plugin"
)

var validate = validator.New()

// PatientRecord is everything the service knows about a patient: the
// demographics and a list of coded measurements.
type PatientRecord struct {
	Patient      plugin.Patient `json:"patient"`
	Observations []Observation  `json:"observations" validate:"dive"`
}

// Observation is a single coded measurement taken at a point in time.
type Observation struct {
	Code      string    `json:"code" validate:"required"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit,omitempty"`
	Status    string    `json:"status,omitempty"`
	Effective time.Time `json:"effective"`
}

// usable reports whether the observation's status allows it to be used in a
// calculation.  A missing status is treated as final.
func (o *Observation) usable() bool {
	switch o.Status {
	case "", "final", "amended", "preliminary", "registered":
		return true
	}
	return false
}

// RecordToEventStream takes a patient record and converts it to an
// EventStream ordered by date.  Observations without an effective date, or
// whose status marks them as unusable, are left out.  A record without a
// patient id, or with an uncoded observation, is considered an error.
func RecordToEventStream(record *PatientRecord) (*plugin.EventStream, error) {
	if err := validate.Struct(record); err != nil {
		return nil, err
	}
	if record.Patient.Id == "" {
		return nil, errMissingPatientID
	}

	patient := record.Patient
	events := make([]plugin.Event, 0, len(record.Observations))
	for i := range record.Observations {
		o := &record.Observations[i]
		if !o.usable() || o.Effective.IsZero() {
			continue
		}
		events = append(events, plugin.Event{
			Date:  o.Effective,
			Type:  plugin.ObservationEvent,
			End:   false,
			Value: &plugin.Measurement{Code: o.Code, Value: o.Value, Unit: o.Unit},
		})
	}

	es := plugin.NewEventStream(&patient)
	plugin.SortEventsByDate(events)
	es.Events = events
	return es, nil
}

func addSignificantBirthdayEvents(es *plugin.EventStream, birthdays []int) {
	if len(birthdays) == 0 || es.Patient == nil || es.Patient.BirthDate == nil {
		return
	}

	for _, age := range birthdays {
		bd := es.Patient.BirthDate.AddDate(age, 0, 0)
		if bd.Before(time.Now()) {
			es.Events = append(es.Events, plugin.Event{Date: bd, Type: plugin.AgeEvent, End: false, Value: age})
		}
	}

	plugin.SortEventsByDate(es.Events)
}
