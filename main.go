package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kgrid-demos/score/logging"
	"github.com/spf13/cobra"
)

// errRefused is returned by commands whose input could not be scored.  It
// maps to exit status 1 without an extra error line.
var errRefused = errors.New("input refused")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "score",
		Short: "SCORE 10-year risk of fatal cardiovascular disease",
		Long: `score computes the SCORE 10-year risk of fatal cardiovascular disease
from age, sex, systolic blood pressure, total cholesterol, smoking status and
the baseline risk category of the patient's region.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newCalcCmd(), newBatchCmd())
	return rootCmd
}

func main() {
	logging.Init()
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRefused) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
