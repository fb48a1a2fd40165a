package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/kgrid-demos/score/batch"
	"github.com/kgrid-demos/score/logging"
	"github.com/kgrid-demos/score/plugin"
	"github.com/kgrid-demos/score/score"
	"github.com/kgrid-demos/score/service"
	"github.com/labstack/echo/v4"
)

// RunIDHeader carries the id of a batch run in the response.
const RunIDHeader = "X-Score-Run-Id"

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	store      service.AssessmentStore
	service    service.RiskService
	basePieURL string
	delayer    *FunctionDelayer
	metrics    *Metrics
	log        *log.Logger
}

// RegisterRoutes sets up the http request handlers with Echo
func RegisterRoutes(e *echo.Echo, store service.AssessmentStore, basePieURL string, svc service.RiskService, fnDelayer *FunctionDelayer, metrics *Metrics) {
	h := &handlers{
		store:      store,
		service:    svc,
		basePieURL: basePieURL,
		delayer:    fnDelayer,
		metrics:    metrics,
		log:        logging.Logger(logging.SourceWeb),
	}

	e.POST("/score", h.score)
	e.POST("/score/batch", h.scoreBatch)
	e.POST("/calculate", h.calculate)
	e.GET("/pies/:id", h.pie)
	e.GET("/patients/:id/assessments", h.assessments)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

func (h *handlers) score(c echo.Context) error {
	var in score.PatientInput
	if err := json.NewDecoder(c.Request().Body).Decode(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed patient: " + err.Error()})
	}

	assessment, err := score.ComputeRisk(in)
	h.metrics.ObserveAssessment(assessment)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, assessment)
	}
	return c.JSON(http.StatusOK, assessment)
}

func (h *handlers) scoreBatch(c echo.Context) error {
	includeDiagnostics := false
	if v := c.QueryParam("diagnostics"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "diagnostics must be true or false"})
		}
		includeDiagnostics = b
	}

	var out bytes.Buffer
	summary, err := batch.Run(c.Request().Body, &out, batch.Options{
		IncludeDiagnostics: includeDiagnostics,
		Observe:            h.metrics.ObserveAssessment,
	})
	c.Response().Header().Set(RunIDHeader, summary.RunID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", out.Bytes())
}

func (h *handlers) calculate(c echo.Context) error {
	record := &service.PatientRecord{}
	if err := json.NewDecoder(c.Request().Body).Decode(record); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed patient record: " + err.Error()})
	}
	if record.Patient.Id == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "patient record has no patient id"})
	}

	patientID := record.Patient.Id
	h.delayer.Delay(patientID, func() {
		err := h.service.Calculate(record, h.basePieURL)
		h.metrics.ObserveCalculation(err)
		if err != nil {
			h.log.Error("risk calculation failed", "patient", patientID, "err", err)
		}
	})
	return c.NoContent(http.StatusAccepted)
}

func (h *handlers) pie(c echo.Context) error {
	pie, err := h.store.Pie(c.Param("id"))
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return c.String(http.StatusBadRequest, "Bad ID format for requested Pie. Should be a BSON Id")
	case errors.Is(err, service.ErrNotFound):
		return c.NoContent(http.StatusNotFound)
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, pie)
}

func (h *handlers) assessments(c echo.Context) error {
	ras, err := h.store.Assessments(c.Param("id"))
	if err != nil {
		return err
	}
	if ras == nil {
		ras = []plugin.RiskAssessment{}
	}
	return c.JSON(http.StatusOK, ras)
}
