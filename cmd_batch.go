package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kgrid-demos/score/batch"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	var (
		outputPath         string
		includeDiagnostics bool
	)

	batchCmd := &cobra.Command{
		Use:   "batch <patients.csv>",
		Short: "Score a CSV file of patients",
		Long: `Scores every row of a CSV file with the columns age, sex, sbp, chol,
smoke and risk, and writes the rows back with CHDRisk, nonCHDRisk and
totalRisk appended.  Use - to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			summary, err := batch.Run(in, out, batch.Options{IncludeDiagnostics: includeDiagnostics})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "scored %d of %d rows (%d corrected, %d refused)\n",
				summary.Scored, summary.Rows, summary.Corrected, summary.Refused)
			return nil
		},
	}

	batchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the scored rows to this file instead of standard output")
	batchCmd.Flags().BoolVar(&includeDiagnostics, "diagnostics", false, "Append a diagnostics column")
	return batchCmd
}
