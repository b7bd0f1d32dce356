package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devrig/internal/adapters/logging"
	"github.com/felixgeelhaar/devrig/internal/app"
	"github.com/felixgeelhaar/devrig/internal/domain/config"
	"github.com/felixgeelhaar/devrig/internal/domain/engine"
	"github.com/felixgeelhaar/devrig/internal/ports"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Provision the machine from the manifest",
	Long: `Run compiles the manifest into an ordered step sequence and executes it.

Each step is checked first: steps whose outcome is already present are
skipped. A critical step failure stops the run immediately; the exit code
is the 1-based index of the failed step.

Use --dry-run to see what would happen without making changes.`,
	RunE: runRun,
}

var (
	runDryRun   bool
	runFromStep string
	runList     bool
)

// devrigClient is the surface of the app used by this command. Tests swap
// newDevrig to inject fakes.
type devrigClient interface {
	Load(path string) (*config.Manifest, error)
	Compile(manifest *config.Manifest) (*engine.Sequence, error)
	Run(ctx context.Context, seq *engine.Sequence, opts engine.Options) (*engine.Report, error)
	PrintSteps(seq *engine.Sequence)
	PrintReport(report *engine.Report)
}

var newDevrig = func(out io.Writer, logger ports.Logger) devrigClient {
	return app.New(out, logger)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Show what would be done without making changes")
	runCmd.Flags().StringVar(&runFromStep, "from-step", "", "Resume the sequence at this step ID")
	runCmd.Flags().BoolVar(&runList, "list", false, "List the compiled steps without running them")
}

func runRun(cmd *cobra.Command, _ []string) error {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	logger := logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
	)

	client := newDevrig(cmd.OutOrStdout(), logger)

	manifest, err := client.Load(cfgFile)
	if err != nil {
		return err
	}

	seq, err := client.Compile(manifest)
	if err != nil {
		return err
	}

	if runList {
		client.PrintSteps(seq)
		return nil
	}

	report, runErr := client.Run(cmd.Context(), seq, engine.Options{
		DryRun:   runDryRun,
		FromStep: runFromStep,
	})
	if report != nil {
		client.PrintReport(report)
	}
	return runErr
}
