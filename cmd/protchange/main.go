// Package main provides the protchange command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/protchange/internal/annotate"
	"github.com/inodb/protchange/internal/duckdb"
	"github.com/inodb/protchange/internal/output"
	"github.com/inodb/protchange/internal/vcf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks command-line mistakes.
type usageError struct{ error }

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr)
			fmt.Fprint(stderr, cmd.UsageString())
			return ExitUsage
		}
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "protchange <vcf-file>",
		Short: "Report protein changes from an ANN-annotated VCF",
		Long: `Reads a VCF file annotated with an ANN INFO field and prints one line per
protein-coding transcript annotation that changes the protein:

  CHROM POS REF ALT GENE TRANSCRIPT HGVSp

ALT is the record's alternate allele the annotation refers to.
Use '-' to read the VCF from stdin.`,
		Example: `  protchange input.vcf
  protchange -o changes.txt input.vcf.gz
  protchange --db ~/.protchange/rows.duckdb input.vcf
  cat input.vcf | protchange -`,
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.protchange.yaml)")
	cmd.PersistentFlags().String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("db", "", "DuckDB file holding stored rows")

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.String("info-key", annotate.DefaultInfoKey, "INFO key holding the annotations")
	flags.Bool("strict-deletions", false, "Fail on records with several deletion lengths instead of warning")

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}

func runResolve(cmd *cobra.Command, inputPath string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, err := newLogger(settings.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Sync()

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", annotate.ErrSourceRead, err)
	}
	defer parser.Close()

	out := cmd.OutOrStdout()
	if settings.Output != "" {
		f, err := os.Create(settings.Output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	text := output.NewTextWriter(out)
	writers := []annotate.RowWriter{text}

	if settings.DB != "" {
		store, err := duckdb.Open(settings.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		fp := sourceFingerprint(inputPath)
		if prev, ok, err := store.LookupSource(fp.Path); err != nil {
			return err
		} else if ok {
			logger.Info("replacing stored rows",
				zap.String("source", fp.Path),
				zap.Int64("rows", prev.RowCount),
				zap.Bool("unchanged", prev.Matches(fp)))
		}
		writers = append(writers, store.NewRowSink(fp))
	}

	proc := annotate.NewProcessor()
	proc.SetLogger(logger)
	proc.SetInfoKey(settings.Annotation.InfoKey)
	proc.SetStrictDeletions(settings.Annotation.StrictDeletions)

	if err := proc.ProcessAll(parser, output.NewMultiWriter(writers...)); err != nil {
		// Rows printed before the failing record stay visible.
		text.Flush()
		return err
	}
	return nil
}

// sourceFingerprint identifies the input file for the row store.
func sourceFingerprint(inputPath string) duckdb.FileFingerprint {
	if inputPath == "-" {
		return duckdb.FileFingerprint{Path: inputPath}
	}
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		abs = inputPath
	}
	fp, err := duckdb.StatFile(abs)
	if err != nil {
		return duckdb.FileFingerprint{Path: abs}
	}
	return fp
}
