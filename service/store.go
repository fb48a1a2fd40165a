package service

import (
	"errors"

	"github.com/kgrid-demos/score/plugin"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// Store errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("bad ID format for requested pie, should be a BSON id")
)

// AssessmentStore persists the risk assessments and pies produced by the risk service.
type AssessmentStore interface {
	// ReplaceAssessments deletes the patient's assessments and pies that were produced by the given method and
	// stores the new ones in their place.
	ReplaceAssessments(patientID string, method plugin.CodeableConcept, assessments []*plugin.RiskAssessment, pies []*plugin.Pie) error
	// Pie returns the pie with the given hex id.
	Pie(id string) (*plugin.Pie, error)
	// Assessments returns the patient's assessments, oldest first.
	Assessments(patientID string) ([]plugin.RiskAssessment, error)
}

// MongoStore is an AssessmentStore backed by the "pies" and "riskassessments" collections of a MongoDB database.
type MongoStore struct {
	db *mgo.Database
}

// NewMongoStore returns a store on the given database.
func NewMongoStore(db *mgo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// EnsureIndexes creates the indexes used by the store's queries.
func (s *MongoStore) EnsureIndexes() error {
	if err := s.db.C("pies").EnsureIndexKey("patient"); err != nil {
		return err
	}
	return s.db.C("riskassessments").EnsureIndexKey("patient", "date")
}

// ReplaceAssessments implements AssessmentStore.
func (s *MongoStore) ReplaceAssessments(patientID string, method plugin.CodeableConcept, assessments []*plugin.RiskAssessment, pies []*plugin.Pie) error {
	if len(method.Coding) == 0 {
		return errMissingCoding
	}
	pieCollection := s.db.C("pies")
	raCollection := s.db.C("riskassessments")

	// Delete the old pies and assessments
	byMethod := methodQuery(method.Coding[0])
	if _, err := pieCollection.RemoveAll(bson.M{"patient": plugin.PatientReference(patientID), "method.coding": byMethod}); err != nil {
		return err
	}
	if _, err := raCollection.RemoveAll(bson.M{"patient": patientID, "method.coding": byMethod}); err != nil {
		return err
	}

	// Store the new pies along with their method (to identify by patient and method)
	for i := range pies {
		pieWithMethod := struct {
			plugin.Pie `bson:",inline"`
			Method     plugin.CodeableConcept `bson:"method"`
		}{
			*pies[i],
			method,
		}
		if err := pieCollection.Insert(&pieWithMethod); err != nil {
			return err
		}
	}
	for i := range assessments {
		if err := raCollection.Insert(assessments[i]); err != nil {
			return err
		}
	}
	return nil
}

// Pie implements AssessmentStore.
func (s *MongoStore) Pie(id string) (*plugin.Pie, error) {
	if !bson.IsObjectIdHex(id) {
		return nil, ErrInvalidID
	}
	pie := &plugin.Pie{}
	if err := s.db.C("pies").FindId(bson.ObjectIdHex(id)).One(pie); err != nil {
		if err == mgo.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pie, nil
}

// Assessments implements AssessmentStore.
func (s *MongoStore) Assessments(patientID string) ([]plugin.RiskAssessment, error) {
	var ras []plugin.RiskAssessment
	if err := s.db.C("riskassessments").Find(bson.M{"patient": patientID}).Sort("date").All(&ras); err != nil {
		return nil, err
	}
	return ras, nil
}

func methodQuery(coding plugin.Coding) bson.M {
	return bson.M{"$elemMatch": bson.M{"system": coding.System, "code": coding.Code}}
}
