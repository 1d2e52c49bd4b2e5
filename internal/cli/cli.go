package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tgreenwood/leaguetables/internal/extract"
	"github.com/tgreenwood/leaguetables/internal/fetch"
	"github.com/tgreenwood/leaguetables/internal/logger"
	"github.com/tgreenwood/leaguetables/internal/merge"
	"github.com/tgreenwood/leaguetables/internal/model"
	"github.com/tgreenwood/leaguetables/internal/outcome"
	"github.com/tgreenwood/leaguetables/internal/storage"
	"github.com/tgreenwood/leaguetables/internal/verify"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitViolations = 2
)

var (
	flagDataDir string
	flagFormat  string
	flagRules   string
	flagVerbose bool

	flagSource  string
	flagFrom    int
	flagTo      int
	flagDataset string

	flagIncludeEmpty bool
	flagKeepWarYears bool
	flagMergeOut     string
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaguetables",
		Short: "Extract, merge and verify historical English league tables",
		Long: `A CLI tool for building normalized historical English football
league-table datasets: extract season tables from overview pages, division
pages or fixed-width archives, merge datasets in source-priority order, and
verify the result's invariants.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir",
		envOr("LEAGUETABLES_DATA_DIR", "~/.local/share/leaguetables"),
		"Data directory for datasets")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().StringVar(&flagRules, "rules", os.Getenv("LEAGUETABLES_RULES"),
		"Path to a JSON5 rules file overriding the built-in classification keywords")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := logger.LevelInfo
		if flagVerbose {
			level = logger.LevelDebug
		}
		logger.SetDefault(logger.New(level, os.Stderr))

		if _, err := parseFormat(); err != nil {
			return err
		}
		return nil
	}

	cmd.AddCommand(newExtractCmd(), newMergeCmd(), newVerifyCmd())
	return cmd
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract season tables from a source into a dataset",
		RunE:  runExtract,
	}
	cmd.Flags().StringVar(&flagSource, "source", "overview", "Source dialect: overview, division or rsssf")
	cmd.Flags().IntVar(&flagFrom, "from", 0, "First season start year (required)")
	cmd.Flags().IntVar(&flagTo, "to", 0, "Last season start year (required)")
	cmd.Flags().StringVar(&flagDataset, "dataset", "league", "Dataset name within the data directory")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Merge dataset files in priority order and print diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMerge,
	}
	cmd.Flags().BoolVar(&flagIncludeEmpty, "include-empty", false, "Keep seasons with no table rows")
	cmd.Flags().BoolVar(&flagKeepWarYears, "keep-war-years", false, "Keep wartime-suspension seasons")
	cmd.Flags().StringVar(&flagMergeOut, "out", "", "Save the merged dataset under this name in the data directory")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE",
		Short: "Check a dataset file for invariant violations",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
}

func parseFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

func loadRules() (*outcome.Rules, error) {
	if flagRules == "" {
		return outcome.Default(), nil
	}
	return outcome.Load(flagRules)
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}
	source, err := extract.ParseSource(flagSource)
	if err != nil {
		return err
	}
	if flagFrom > flagTo {
		return fmt.Errorf("--from %d is after --to %d", flagFrom, flagTo)
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	ds, err := store.Load(flagDataset)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	extractor := extract.New(fetch.NewClient(), rules)
	err = extractor.Run(cmd.Context(), ds, extract.RunOptions{
		Source: source,
		From:   flagFrom,
		To:     flagTo,
		Checkpoint: func(ds *model.Dataset) error {
			return store.Save(flagDataset, ds)
		},
	})
	if err != nil {
		return fmt.Errorf("extracting: %w", err)
	}

	return WriteExtractResult(os.Stdout, &ExtractResult{
		ExtractedAt: time.Now().UTC(),
		Source:      string(source),
		From:        flagFrom,
		To:          flagTo,
		Seasons:     len(ds.Seasons),
		Dataset:     store.Path(flagDataset),
	}, format)
}

func runMerge(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	datasets := make([]*model.Dataset, 0, len(args))
	for _, path := range args {
		ds, err := storage.LoadFile(path)
		if err != nil {
			return err
		}
		datasets = append(datasets, ds)
	}

	merged, report := merge.Merge(datasets, merge.Options{
		IncludeEmpty: flagIncludeEmpty,
		KeepWarYears: flagKeepWarYears,
	})

	if flagMergeOut != "" {
		store, err := storage.New(flagDataDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		if err := store.Save(flagMergeOut, merged); err != nil {
			return fmt.Errorf("saving merged dataset: %w", err)
		}
	}

	return WriteReport(os.Stdout, report, format)
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	ds, err := storage.LoadFile(args[0])
	if err != nil {
		return err
	}

	report := verify.Check(ds)
	if err := WriteReport(os.Stdout, report, format); err != nil {
		return err
	}
	if !report.Clean() {
		os.Exit(ExitViolations)
	}
	return nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
