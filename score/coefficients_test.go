package score

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	. "gopkg.in/check.v1"
)

type CoefficientsSuite struct{}

var _ = Suite(&CoefficientsSuite{})

func (s *CoefficientsSuite) TestLookup(c *C) {
	tests := []struct {
		outcome Outcome
		key     CoefficientKey
		expect  Coefficients
	}{
		{CHD, CoefficientKey{LowRisk, Male}, Coefficients{-22.1, 4.71}},
		{CHD, CoefficientKey{LowRisk, Female}, Coefficients{-29.8, 6.36}},
		{CHD, CoefficientKey{HighRisk, Male}, Coefficients{-21.0, 4.62}},
		{CHD, CoefficientKey{HighRisk, Female}, Coefficients{-28.7, 6.23}},
		{NonCHD, CoefficientKey{LowRisk, Male}, Coefficients{-26.7, 5.64}},
		{NonCHD, CoefficientKey{LowRisk, Female}, Coefficients{-31, 6.62}},
		{NonCHD, CoefficientKey{HighRisk, Male}, Coefficients{-25.7, 5.47}},
		{NonCHD, CoefficientKey{HighRisk, Female}, Coefficients{-30, 6.42}},
	}
	for _, t := range tests {
		got, err := LookupCoefficients(t.outcome, t.key)
		c.Assert(err, IsNil)
		c.Assert(got, Equals, t.expect)
	}
}

func (s *CoefficientsSuite) TestLookupUnknownKey(c *C) {
	_, err := LookupCoefficients(CHD, CoefficientKey{Category: "medium", Sex: Male})
	var keyErr *UnknownCoefficientKeyError
	c.Assert(errors.As(err, &keyErr), Equals, true)
	c.Assert(err.Error(), Equals, `unknown CHD coefficient key: risk "medium", sex "M"`)

	_, err = LookupCoefficients(Outcome(7), CoefficientKey{LowRisk, Male})
	c.Assert(errors.As(err, &keyErr), Equals, true)
}

func (s *CoefficientsSuite) TestParse(c *C) {
	sex, ok := ParseSex("F")
	c.Assert(ok, Equals, true)
	c.Assert(sex, Equals, Female)
	_, ok = ParseSex("female")
	c.Assert(ok, Equals, false)

	cat, ok := ParseRiskCategory("high")
	c.Assert(ok, Equals, true)
	c.Assert(cat, Equals, HighRisk)
	_, ok = ParseRiskCategory("High")
	c.Assert(ok, Equals, false)
}

func (s *CoefficientsSuite) TestRound(c *C) {
	c.Assert(Round(0.0059547301234), Equals, 0.00595473)
	c.Assert(Round(0.4), Equals, 0.4)
	c.Assert(Round(0.123456789499), Equals, 0.123456789)
}

func (s *CoefficientsSuite) TestOutcomeString(c *C) {
	c.Assert(CHD.String(), Equals, "CHD")
	c.Assert(NonCHD.String(), Equals, "non-CHD")
	c.Assert(Outcome(9).String(), Equals, "unknown")
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// ApproxEquals checks that two float64 values differ by no more than the
// given tolerance.
var ApproxEquals Checker = &approxChecker{
	&CheckerInfo{Name: "ApproxEquals", Params: []string{"obtained", "expected", "tolerance"}},
}

type approxChecker struct {
	*CheckerInfo
}

func (a *approxChecker) Check(params []interface{}, names []string) (bool, string) {
	obtained, ok := params[0].(float64)
	if !ok {
		return false, "obtained value must be a float64"
	}
	expected, ok := params[1].(float64)
	if !ok {
		return false, "expected value must be a float64"
	}
	tolerance, ok := params[2].(float64)
	if !ok {
		return false, "tolerance must be a float64"
	}
	if diff := math.Abs(obtained - expected); diff > tolerance {
		return false, fmt.Sprintf("difference %g exceeds tolerance %g", diff, tolerance)
	}
	return true, ""
}
