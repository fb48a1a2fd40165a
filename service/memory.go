package service

import (
	"sort"
	"sync"

	"github.com/kgrid-demos/score/plugin"
	"gopkg.in/mgo.v2/bson"
)

// MemoryStore is an AssessmentStore that keeps everything in process memory.
// It is used when no database is configured and in tests.
type MemoryStore struct {
	sync.RWMutex
	pies        map[bson.ObjectId]storedPie
	assessments []plugin.RiskAssessment
}

type storedPie struct {
	pie    plugin.Pie
	method plugin.Coding
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pies: make(map[bson.ObjectId]storedPie)}
}

// ReplaceAssessments implements AssessmentStore.
func (m *MemoryStore) ReplaceAssessments(patientID string, method plugin.CodeableConcept, assessments []*plugin.RiskAssessment, pies []*plugin.Pie) error {
	if len(method.Coding) == 0 {
		return errMissingCoding
	}
	coding := method.Coding[0]

	m.Lock()
	defer m.Unlock()

	patientRef := plugin.PatientReference(patientID)
	for id, p := range m.pies {
		if p.pie.Patient == patientRef && p.method == coding {
			delete(m.pies, id)
		}
	}
	kept := m.assessments[:0]
	for _, ra := range m.assessments {
		if ra.Patient == patientID && hasCoding(ra.Method, coding) {
			continue
		}
		kept = append(kept, ra)
	}
	m.assessments = kept

	for _, p := range pies {
		m.pies[p.Id] = storedPie{pie: *p.Clone(false), method: coding}
	}
	for _, ra := range assessments {
		m.assessments = append(m.assessments, *ra)
	}
	return nil
}

// Pie implements AssessmentStore.
func (m *MemoryStore) Pie(id string) (*plugin.Pie, error) {
	if !bson.IsObjectIdHex(id) {
		return nil, ErrInvalidID
	}
	m.RLock()
	defer m.RUnlock()
	p, ok := m.pies[bson.ObjectIdHex(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return p.pie.Clone(false), nil
}

// Assessments implements AssessmentStore.
func (m *MemoryStore) Assessments(patientID string) ([]plugin.RiskAssessment, error) {
	m.RLock()
	defer m.RUnlock()
	var ras []plugin.RiskAssessment
	for _, ra := range m.assessments {
		if ra.Patient == patientID {
			ras = append(ras, ra)
		}
	}
	sort.SliceStable(ras, func(i, j int) bool {
		return ras[i].Date.Before(ras[j].Date)
	})
	return ras, nil
}

func hasCoding(concept plugin.CodeableConcept, coding plugin.Coding) bool {
	for _, c := range concept.Coding {
		if c == coding {
			return true
		}
	}
	return false
}
