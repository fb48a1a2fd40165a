package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/kgrid-demos/score/score"
	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	var (
		in       score.PatientInput
		jsonOut  bool
		dumpOut  bool
		required = []string{"age", "sex", "sbp", "chol", "smoke", "risk"}
	)

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Score a single patient",
		Long: `Scores one patient.  Out of range age, blood pressure and cholesterol
values are corrected where possible and reported; the command exits with
status 1 when the input cannot be scored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assessment, err := score.ComputeRisk(in)
			out := cmd.OutOrStdout()
			switch {
			case dumpOut:
				spew.Fdump(out, assessment)
			case jsonOut:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(assessment); encErr != nil {
					return encErr
				}
			default:
				printDiagnostics(cmd.ErrOrStderr(), assessment.Diagnostics)
				if assessment.Result != nil {
					printResult(out, assessment.Result)
				}
			}
			if err != nil {
				return errRefused
			}
			return nil
		},
	}

	calcCmd.Flags().IntVar(&in.Age, "age", 0, "Age in years (40 to 65; 31-39 and 66-89 are corrected)")
	calcCmd.Flags().StringVar(&in.Sex, "sex", "", "Sex, M or F")
	calcCmd.Flags().Float64Var(&in.SBP, "sbp", 0, "Systolic blood pressure in mmHg (120 to 180)")
	calcCmd.Flags().Float64Var(&in.Chol, "chol", 0, "Total cholesterol in mmol/L (4 to 8)")
	calcCmd.Flags().IntVar(&in.Smoke, "smoke", 0, "Smoking status, 0 for nonsmoker and 1 for smoker")
	calcCmd.Flags().StringVar(&in.Risk, "risk", "", "Baseline risk category of the region, low or high")
	calcCmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full assessment as JSON")
	calcCmd.Flags().BoolVar(&dumpOut, "dump", false, "Dump the assessment structure for debugging")
	for _, name := range required {
		_ = calcCmd.MarkFlagRequired(name)
	}
	calcCmd.MarkFlagsMutuallyExclusive("json", "dump")
	return calcCmd
}

func printResult(w io.Writer, r *score.RiskResult) {
	fmt.Fprintf(w, "CHDRisk:    %s\n", formatRisk(r.CHDRisk))
	fmt.Fprintf(w, "nonCHDRisk: %s\n", formatRisk(r.NonCHDRisk))
	fmt.Fprintf(w, "totalRisk:  %s\n", formatRisk(r.TotalRisk))
}

func formatRisk(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printDiagnostics(w io.Writer, d score.Diagnostics) {
	fields := make([]string, 0, len(d))
	for field := range d {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "%s: %s\n", field, d[field])
	}
}
