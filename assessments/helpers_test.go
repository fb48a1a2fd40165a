package assessments

import (
	"math"
	"time"

	"github.com/kgrid-demos/score/plugin"
	. "gopkg.in/check.v1"
)

func ageEvent(age int, birthDate time.Time) plugin.Event {
	return plugin.Event{
		Date:  birthDate.AddDate(age, 0, 0),
		Type:  plugin.AgeEvent,
		End:   false,
		Value: age,
	}
}

func observationEvent(code string, value float64, unit string, effective time.Time) plugin.Event {
	return plugin.Event{
		Date:  effective,
		Type:  plugin.ObservationEvent,
		End:   false,
		Value: &plugin.Measurement{Code: code, Value: value, Unit: unit},
	}
}

func sbpEvent(value float64, effective time.Time) plugin.Event {
	return observationEvent(SystolicBloodPressureCode, value, "mm[Hg]", effective)
}

func cholesterolEvent(value float64, effective time.Time) plugin.Event {
	return observationEvent(TotalCholesterolCode, value, "mmol/L", effective)
}

func smokingEvent(smoker bool, effective time.Time) plugin.Event {
	v := 0.0
	if smoker {
		v = 1
	}
	return observationEvent(SmokingStatusCode, v, "", effective)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func assertPercent(c *C, result plugin.RiskServiceCalculationResult, expected float64) {
	c.Assert(result.ProbabilityDecimal, NotNil)
	c.Assert(math.Abs(*result.ProbabilityDecimal-expected) < 1e-7, Equals, true,
		Commentf("expected %v, got %v", expected, *result.ProbabilityDecimal))
}

func assertSlices(c *C, pie *plugin.Pie, age, sbp, chol, smoking int) {
	c.Assert(pie.Slices, HasLen, 4)
	expect := map[string]int{AgeSlice: age, BloodPressureSlice: sbp, CholesterolSlice: chol, SmokingSlice: smoking}
	for name, value := range expect {
		v, ok := pie.SliceValue(name)
		c.Assert(ok, Equals, true)
		c.Assert(v, Equals, value, Commentf("slice %s", name))
	}
}
