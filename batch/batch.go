// Package batch scores CSV files of patients.  Input files carry the columns
// age, sex, sbp, chol, smoke and risk; the scored output repeats them and
// adds CHDRisk, nonCHDRisk and totalRisk.
package batch

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/kgrid-demos/score/logging"
	"github.com/kgrid-demos/score/score"
)

// Smoking is a smoking status cell.  It accepts 0/1 as well as N/Y in either
// case and writes back the text it was read from.
type Smoking struct {
	Value int
	Raw   string
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.  Unrecognized text decodes
// to -1 so that validation reports it.
func (s *Smoking) UnmarshalCSV(field string) error {
	s.Raw = field
	switch strings.ToUpper(strings.TrimSpace(field)) {
	case "0", "N":
		s.Value = 0
	case "1", "Y":
		s.Value = 1
	default:
		s.Value = -1
	}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (s Smoking) MarshalCSV() (string, error) {
	if s.Raw == "" && s.Value >= 0 {
		return strconv.Itoa(s.Value), nil
	}
	return s.Raw, nil
}

// Probability is a risk cell that is empty when no risk was computed.
type Probability struct {
	Value *float64
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (p Probability) MarshalCSV() (string, error) {
	if p.Value == nil {
		return "", nil
	}
	return strconv.FormatFloat(*p.Value, 'f', -1, 64), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (p *Probability) UnmarshalCSV(field string) error {
	field = strings.TrimSpace(field)
	if field == "" {
		p.Value = nil
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// Patient is one input row.
type Patient struct {
	Age   int     `csv:"age"`
	Sex   string  `csv:"sex"`
	SBP   float64 `csv:"sbp"`
	Chol  float64 `csv:"chol"`
	Smoke Smoking `csv:"smoke"`
	Risk  string  `csv:"risk"`
}

// Input returns the patient as calculator input.
func (p *Patient) Input() score.PatientInput {
	return score.PatientInput{
		Age:   p.Age,
		Sex:   strings.TrimSpace(p.Sex),
		SBP:   p.SBP,
		Chol:  p.Chol,
		Smoke: p.Smoke.Value,
		Risk:  strings.TrimSpace(p.Risk),
	}
}

// Row is one scored output row.  Refused rows have empty risk cells.
type Row struct {
	Patient
	CHDRisk    Probability `csv:"CHDRisk"`
	NonCHDRisk Probability `csv:"nonCHDRisk"`
	TotalRisk  Probability `csv:"totalRisk"`

	assessment *score.Assessment
}

// Assessment returns the assessment the row was scored from, or nil for rows
// that were read back from a file.
func (r *Row) Assessment() *score.Assessment {
	return r.assessment
}

type annotatedRow struct {
	Row
	Notes string `csv:"diagnostics"`
}

// ReadPatients decodes the patients in a CSV file with a header line.
func ReadPatients(r io.Reader) ([]*Patient, error) {
	var patients []*Patient
	if err := gocsv.Unmarshal(r, &patients); err != nil {
		return nil, fmt.Errorf("reading patients: %w", err)
	}
	return patients, nil
}

// ReadRows decodes a scored CSV file as written by WriteRows.
func ReadRows(r io.Reader) ([]*Row, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading scored rows: %w", err)
	}
	return rows, nil
}

// Score computes the risk of every patient.  Rows keep the input order.
func Score(patients []*Patient) []*Row {
	rows := make([]*Row, len(patients))
	for i, p := range patients {
		row := &Row{Patient: *p}
		assessment, err := score.ComputeRisk(p.Input())
		row.assessment = assessment
		if err == nil {
			row.CHDRisk.Value = &assessment.Result.CHDRisk
			row.NonCHDRisk.Value = &assessment.Result.NonCHDRisk
			row.TotalRisk.Value = &assessment.Result.TotalRisk
		}
		rows[i] = row
	}
	return rows
}

// WriteRows encodes scored rows with a header line.  When includeDiagnostics
// is set a trailing diagnostics column lists the corrections and refusals of
// each row.
func WriteRows(w io.Writer, rows []*Row, includeDiagnostics bool) error {
	if !includeDiagnostics {
		return gocsv.Marshal(rows, w)
	}
	annotated := make([]*annotatedRow, len(rows))
	for i, row := range rows {
		annotated[i] = &annotatedRow{Row: *row}
		if row.assessment != nil {
			annotated[i].Notes = FormatDiagnostics(row.assessment.Diagnostics)
		}
	}
	return gocsv.Marshal(annotated, w)
}

// FormatDiagnostics renders diagnostics as "field: message" pairs joined by
// "; ", ordered by field name.
func FormatDiagnostics(d score.Diagnostics) string {
	fields := make([]string, 0, len(d))
	for field := range d {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + d[field]
	}
	return strings.Join(parts, "; ")
}

// Summary counts the outcomes of a batch run.  Corrected rows are also
// counted as scored.
type Summary struct {
	RunID     string `json:"runId"`
	Rows      int    `json:"rows"`
	Scored    int    `json:"scored"`
	Corrected int    `json:"corrected"`
	Refused   int    `json:"refused"`
}

// Summarize counts the outcomes of the given rows.
func Summarize(rows []*Row) Summary {
	s := Summary{Rows: len(rows)}
	for _, row := range rows {
		switch {
		case row.assessment == nil || row.assessment.Refused():
			s.Refused++
		case row.assessment.Corrected():
			s.Scored++
			s.Corrected++
		default:
			s.Scored++
		}
	}
	return s
}

// Options control a batch run.
type Options struct {
	IncludeDiagnostics bool
	// Observe, if set, is called with every row's assessment.
	Observe func(*score.Assessment)
}

// Run reads patients from in, scores them and writes the scored rows to out.
func Run(in io.Reader, out io.Writer, opts Options) (Summary, error) {
	runID := uuid.NewString()
	logger := logging.Logger(logging.SourceBatch).With("run", runID)

	patients, err := ReadPatients(in)
	if err != nil {
		logger.Error("batch failed", "err", err)
		return Summary{RunID: runID}, err
	}
	rows := Score(patients)
	if opts.Observe != nil {
		for _, row := range rows {
			opts.Observe(row.assessment)
		}
	}
	if err := WriteRows(out, rows, opts.IncludeDiagnostics); err != nil {
		logger.Error("batch failed", "err", err)
		return Summary{RunID: runID}, err
	}

	summary := Summarize(rows)
	summary.RunID = runID
	logger.Info("batch scored", "rows", summary.Rows, "scored", summary.Scored, "corrected", summary.Corrected, "refused", summary.Refused)
	return summary, nil
}
