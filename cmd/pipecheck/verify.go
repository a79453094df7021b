package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/pipecheck/internal/config"
	"github.com/alexisbeaulieu97/pipecheck/internal/logger"
	"github.com/alexisbeaulieu97/pipecheck/internal/suite"
	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

type verifyOptions struct {
	SuitePath string
	Verbose   bool
	JSON      bool
	Plain     bool
}

// Seams for tests.
var (
	stderrWriter         io.Writer = os.Stderr
	parseSuiteFunc                 = config.ParseSuite
	newLoggerFunc                  = logger.New
	runSuiteFunc                   = func(ctx context.Context, log *logger.Logger, cfg *config.Suite) *suite.Summary {
		return suite.NewRunner(log).Run(ctx, cfg)
	}
	printTableOutputFunc = printTableOutput
	printJSONOutputFunc  = printJSONOutput
	exitFunc             = os.Exit
)

func newVerifyCmd(root *rootFlags) *cobra.Command {
	opts := verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify <suite-file>",
		Short: "Run a verification suite against a finished pipeline job",
		Long: `Verify reads a suite file and checks the finished job against it: the
terminal state the runner reported and the checksum of the output the job
wrote. Exit code 0 means every check was satisfied, 1 means at least one
check observed a different value, 2 means the suite file is invalid, and
3 means a check could not be carried out (storage failure after retries).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SuitePath = args[0]
			opts.Verbose = root.verbose
			if !opts.Plain {
				opts.Plain = !term.IsTerminal(int(os.Stdout.Fd()))
			}

			code, err := runVerifyInternal(opts)
			if err != nil {
				return err
			}
			exitFunc(code)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable styled output")

	return cmd
}

func runVerifyInternal(opts verifyOptions) (int, error) {
	cfg, err := parseSuiteFunc(opts.SuitePath)
	if err != nil {
		var parseErr *pcerrors.ParseError
		var validationErr *pcerrors.ValidationError
		if errors.As(err, &parseErr) || errors.As(err, &validationErr) {
			fmt.Fprintf(stderrWriter, "Invalid suite file: %v\n", err)
			return 2, nil
		}
		fmt.Fprintf(stderrWriter, "Error loading suite: %v\n", err)
		return 2, nil
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	if cfg.Settings.LogLevel != "" && !opts.Verbose {
		level = cfg.Settings.LogLevel
	}

	log, err := newLoggerFunc(logger.Options{Level: level, Pretty: !opts.JSON})
	if err != nil {
		fmt.Fprintf(stderrWriter, "Error creating logger: %v\n", err)
		return 3, nil
	}

	runID := uuid.NewString()
	log = log.WithFields(map[string]any{"run_id": runID, "suite": cfg.Name})
	log.Info("starting verification run")

	summary := runSuiteFunc(context.Background(), log, cfg)

	log.WithFields(map[string]any{
		"total":      summary.Total,
		"satisfied":  summary.Satisfied,
		"mismatched": summary.Mismatched,
		"errored":    summary.Errored,
		"duration":   summary.Duration.String(),
	}).Info("verification run complete")

	if opts.JSON {
		printJSONOutputFunc(summary, opts.SuitePath, runID)
	} else {
		printTableOutputFunc(summary, opts.Plain)
	}

	return summary.ExitCode(), nil
}
