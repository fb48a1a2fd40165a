package plugin

import (
	"time"

	"gopkg.in/mgo.v2/bson"
)

// Pie represents the chart shown next to a risk assessment.  Each slice is
// one of the factors that went into the score; the RiskAssessment basis
// points back to the pie.
type Pie struct {
	Id      bson.ObjectId `bson:"_id" json:"id"`
	Slices  []Slice       `bson:"slices" json:"slices"`
	Patient string        `bson:"patient" json:"patient"`
	Created time.Time     `bson:"created" json:"created"`
}

// Slice represents a component that factors into the overall risk assessment
// algorithm.  In the chart, it appears as a slice in the pie.
type Slice struct {
	Name     string `bson:"name" json:"name"`
	Weight   int    `bson:"weight" json:"weight"`
	Value    int    `bson:"value" json:"value"`
	MaxValue int    `bson:"maxValue,omitempty" json:"maxValue,omitempty"`
}

// NewPie constructs a new pie for the given patient, sets the Create time to
// now, and generates a new ID.  Slices are initially empty.
func NewPie(patientUrl string) *Pie {
	pie := &Pie{}
	pie.Patient = patientUrl
	pie.Created = time.Now()
	pie.Id = bson.NewObjectId()
	return pie
}

// Clone creates a copy of the pie.  If generateNewID is true, it will give
// the clone a new identity.  Slices of the clone can be modified without
// affecting the original.
func (p *Pie) Clone(generateNewID bool) *Pie {
	cloned := *p
	if generateNewID {
		cloned.Id = bson.NewObjectId()
	}
	cloned.Slices = make([]Slice, len(p.Slices))
	copy(cloned.Slices, p.Slices)
	return &cloned
}

// UpdateSliceValue finds the slice with the given name and sets its value,
// capped at the slice's MaxValue when one is set.
func (p *Pie) UpdateSliceValue(name string, value int) {
	for i := range p.Slices {
		if p.Slices[i].Name == name {
			if p.Slices[i].MaxValue > 0 && value > p.Slices[i].MaxValue {
				value = p.Slices[i].MaxValue
			}
			if value < 0 {
				value = 0
			}
			p.Slices[i].Value = value
			return
		}
	}
}

// SliceValue returns the value of the named slice, or false if the pie has
// no such slice.
func (p *Pie) SliceValue(name string) (int, bool) {
	for i := range p.Slices {
		if p.Slices[i].Name == name {
			return p.Slices[i].Value, true
		}
	}
	return 0, false
}

// TotalValues sums up all the values in the slices.
func (p *Pie) TotalValues() int {
	total := 0
	for i := range p.Slices {
		total += p.Slices[i].Value
	}
	return total
}
