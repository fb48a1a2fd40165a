package plugin

import (
	"sort"
	"time"
)

// Event types understood by the reference plugins.
const (
	ObservationEvent = "Observation"
	AgeEvent         = "Age"
)

// Patient holds the demographics a plugin needs.  Sex uses the SCORE
// spelling ("M" or "F"); RiskRegion optionally overrides the plugin's
// default baseline risk category.
type Patient struct {
	Id         string     `bson:"id" json:"id"`
	Sex        string     `bson:"sex" json:"sex"`
	BirthDate  *time.Time `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	RiskRegion string     `bson:"riskRegion,omitempty" json:"riskRegion,omitempty"`
}

// PatientReference returns the relative reference used to tie pies and
// assessments to a patient.
func PatientReference(id string) string {
	return "Patient/" + id
}

// Measurement is a coded clinical observation value.
type Measurement struct {
	Code  string  `bson:"code" json:"code"`
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Event represents an event that may be of importance to a risk calculation.
// Value holds a *Measurement for observations and an int for age events.
type Event struct {
	Date  time.Time
	Type  string
	End   bool
	Value interface{}
}

// EventStream represents a patient and an ordered stream of events
type EventStream struct {
	Patient *Patient
	Events  []Event
}

// NewEventStream creates a new EventStream for the given patient, initialized to 0 events
func NewEventStream(patient *Patient) *EventStream {
	es := EventStream{}
	es.Patient = patient
	es.Events = make([]Event, 0)
	return &es
}

// Clone returns a copy of the event stream whose event slice can be appended
// to without affecting the original.  Event values are shared.
func (es *EventStream) Clone() *EventStream {
	cloned := NewEventStream(es.Patient)
	cloned.Events = make([]Event, len(es.Events))
	copy(cloned.Events, es.Events)
	return cloned
}

// AddEvent is a convenience function for adding an event to the EventStream
func (es *EventStream) AddEvent(e Event) {
	es.Events = append(es.Events, e)
}

// SortEventsByDate sorts events by their date, keeping the original order of
// events that share a date.
func SortEventsByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
