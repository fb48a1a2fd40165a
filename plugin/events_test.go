package plugin

import (
	"time"

	. "gopkg.in/check.v1"
)

type EventsSuite struct {
}

var _ = Suite(&EventsSuite{})

func (p *EventsSuite) TestNewEventStream(c *C) {
	patient := &Patient{Id: "123", Sex: "F"}

	es := NewEventStream(patient)
	c.Assert(es.Patient, DeepEquals, patient)
	c.Assert(es.Events, HasLen, 0)
}

func (p *EventsSuite) TestEventStreamClone(c *C) {
	patient := &Patient{Id: "123", Sex: "M"}

	es := NewEventStream(patient)
	es.Events = []Event{
		{
			Date:  time.Now(),
			Type:  AgeEvent,
			End:   false,
			Value: 45,
		},
		{
			Date:  time.Now(),
			Type:  ObservationEvent,
			End:   false,
			Value: &Measurement{Code: "8480-6", Value: 135, Unit: "mm[Hg]"},
		},
	}

	// Test initial clone
	clone := es.Clone()
	c.Assert(clone.Patient, DeepEquals, es.Patient)
	c.Assert(&clone.Events, Not(Equals), &es.Events)
	c.Assert(clone.Events, DeepEquals, es.Events)

	// Modify clone and make sure it doesn't affect original
	clone.Events[1].End = true
	clone.AddEvent(Event{Date: time.Now(), Type: AgeEvent, Value: 46})
	c.Assert(es.Events[1].End, Equals, false)
	c.Assert(es.Events, HasLen, 2)
	c.Assert(clone.Events, HasLen, 3)
}

func (p *EventsSuite) TestSortEventsByDate(c *C) {
	events := []Event{
		{Date: time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC), Type: ObservationEvent, Value: 1},
		{Date: time.Date(2005, time.March, 1, 0, 0, 0, 0, time.UTC), Type: AgeEvent, Value: 2},
		{Date: time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC), Type: AgeEvent, Value: 3},
		{Date: time.Date(2001, time.March, 1, 0, 0, 0, 0, time.UTC), Type: ObservationEvent, Value: 4},
	}

	SortEventsByDate(events)
	for i, v := range []int{4, 2, 1, 3} {
		c.Assert(events[i].Value, Equals, v)
	}
}
