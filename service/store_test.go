package service

import (
	"os/exec"
	"time"

	"github.com/kgrid-demos/score/assessments"
	"github.com/kgrid-demos/score/score"
	. "gopkg.in/check.v1"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
	"gopkg.in/mgo.v2/dbtest"
)

type MongoStoreSuite struct {
	DBServer *dbtest.DBServer
	Session  *mgo.Session
	Database *mgo.Database
	Store    *MongoStore
	Service  *ReferenceRiskService
}

var _ = Suite(&MongoStoreSuite{})

func (s *MongoStoreSuite) SetUpSuite(c *C) {
	if _, err := exec.LookPath("mongod"); err != nil {
		c.Skip("mongod is not installed")
	}
	s.DBServer = &dbtest.DBServer{}
	s.DBServer.SetPath(c.MkDir())
}

func (s *MongoStoreSuite) SetUpTest(c *C) {
	s.Session = s.DBServer.Session()
	s.Database = s.Session.DB("scoreservice-test")
	s.Store = NewMongoStore(s.Database)
	c.Assert(s.Store.EnsureIndexes(), IsNil)
	s.Service = NewReferenceRiskService(s.Store)
	s.Service.RegisterPlugin(assessments.NewSCOREPlugin(score.LowRisk))
}

func (s *MongoStoreSuite) TearDownTest(c *C) {
	if s.Session != nil {
		s.Session.Close()
		s.DBServer.Wipe()
	}
}

func (s *MongoStoreSuite) TearDownSuite(c *C) {
	if s.DBServer != nil {
		s.DBServer.Stop()
	}
}

func (s *MongoStoreSuite) TestEndToEndCalculations(c *C) {
	raCollection := s.Database.C("riskassessments")
	piesCollection := s.Database.C("pies")

	err := s.Service.Calculate(femaleRecord(), "http://example.org/pies")
	c.Assert(err, IsNil)

	count, err := raCollection.Find(bson.M{"method.coding.code": "SCORE"}).Count()
	c.Assert(err, IsNil)
	c.Assert(count, Equals, 3)
	count, err = piesCollection.Find(bson.M{"method.coding.code": "SCORE"}).Count()
	c.Assert(err, IsNil)
	c.Assert(count, Equals, 3)

	ras, err := s.Store.Assessments("f1")
	c.Assert(err, IsNil)
	c.Assert(ras, HasLen, 3)
	checkAssessment(c, &ras[0], "f1", day(2015, time.June, 3), 1.3995555, false)
	checkAssessment(c, &ras[1], "f1", day(2016, time.June, 1), 4.7203184, false)
	checkAssessment(c, &ras[2], "f1", day(2016, time.July, 1), 7.7102305, true)

	pieID := ras[2].Basis[0][len("http://example.org/pies/"):]
	pie, err := s.Store.Pie(pieID)
	c.Assert(err, IsNil)
	c.Assert(pie.Patient, Equals, "Patient/f1")
	c.Assert(pie.TotalValues(), Equals, 12)
}

func (s *MongoStoreSuite) TestEndToEndOverwritingCalculations(c *C) {
	for i := 0; i < 3; i++ {
		c.Assert(s.Service.Calculate(femaleRecord(), "http://example.org/pies"), IsNil)
	}

	count, err := s.Database.C("riskassessments").Count()
	c.Assert(err, IsNil)
	c.Assert(count, Equals, 3)
	count, err = s.Database.C("pies").Count()
	c.Assert(err, IsNil)
	c.Assert(count, Equals, 3)
}

func (s *MongoStoreSuite) TestPieLookupErrors(c *C) {
	_, err := s.Store.Pie("123")
	c.Assert(err, Equals, ErrInvalidID)
	_, err = s.Store.Pie(bson.NewObjectId().Hex())
	c.Assert(err, Equals, ErrNotFound)
}
