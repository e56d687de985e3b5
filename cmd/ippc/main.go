package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ippcode/ippc/internal/watch"
	ipperr "github.com/ippcode/ippc/pkgs/errors"
	"github.com/ippcode/ippc/pkgs/generator"
	"github.com/ippcode/ippc/pkgs/opcodes"
	"github.com/ippcode/ippc/pkgs/parser"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		file         string
		snapshotPath string
		watchMode    bool
		debug        bool
		noColor      bool
	)

	rootCmd := &cobra.Command{
		Use:   "ippc",
		Short: "Translate IPPcode24 source into its XML representation",
		Long: `ippc reads IPPcode24 source, checks every instruction against the
opcode signature table and writes the program's XML representation
(UTF-8) to standard output. On the first error nothing is emitted and
the process exits with the error category's dedicated code.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(file, snapshotPath, watchMode, debug)
		},
	}

	rootCmd.Flags().StringVarP(&file, "file", "f", "-", "Path to IPPcode24 source, '-' for stdin")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write a canonical CBOR snapshot of the accepted program to this path")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-run the pipeline whenever the source file changes (requires --file)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		useColor := shouldUseColor(noColor)
		if pe, ok := err.(*ipperr.ParseError); ok {
			formatError(os.Stderr, pe, useColor)
			return ipperr.ExitCode(pe)
		}
		// Anything else came out of flag parsing.
		formatError(os.Stderr, ipperr.NewParameterError(err.Error()), useColor)
		_ = rootCmd.Usage()
		return ipperr.ExitParameter
	}
	return ipperr.ExitSuccess
}

// runPipeline loads the signature table once and drives either a
// single pass or the watch loop over the same pass.
func runPipeline(file, snapshotPath string, watchMode, debug bool) error {
	table, err := opcodes.Load()
	if err != nil {
		return ipperr.NewInternalError("loading signature table", err)
	}

	if watchMode {
		if file == "" || file == "-" {
			return ipperr.NewParameterError("--watch requires --file pointing at a regular file")
		}
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
		if err := watch.Run(context.Background(), file, logger, func() error {
			return parseOnce(file, snapshotPath, debug, table)
		}); err != nil {
			return ipperr.NewInputError(fmt.Sprintf("watching %s", file), err)
		}
		return nil
	}

	return parseOnce(file, snapshotPath, debug, table)
}

// parseOnce runs the full pipeline: read, parse, emit, and optionally
// snapshot. The document reaches stdout only on full success.
func parseOnce(file, snapshotPath string, debug bool, table *opcodes.Table) error {
	reader, closeFunc, err := getInputReader(file)
	if err != nil {
		return err
	}
	defer func() { _ = closeFunc() }()

	source, err := io.ReadAll(reader)
	if err != nil {
		return ipperr.NewInputError("reading source", err)
	}

	program, err := parser.Parse(string(source), table, debug)
	if err != nil {
		return err
	}

	if err := generator.Write(os.Stdout, program, table.Language()); err != nil {
		return ipperr.NewOutputError("writing document", err)
	}
	fmt.Println()

	if snapshotPath != "" {
		data, err := generator.Snapshot(program, table.Language())
		if err != nil {
			return ipperr.NewInternalError("encoding snapshot", err)
		}
		if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
			return ipperr.NewOutputError(fmt.Sprintf("writing snapshot %s", snapshotPath), err)
		}
		fmt.Fprintf(os.Stderr, "snapshot %s sha256=%s\n", snapshotPath, generator.SnapshotDigest(data))
	}

	return nil
}

// getInputReader resolves the two input modes: '-' reads the piped
// stdin, anything else opens a file.
func getInputReader(file string) (io.Reader, func() error, error) {
	if file == "" || file == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, nil, ipperr.NewInputError(fmt.Sprintf("opening %s", file), err)
	}
	return f, f.Close, nil
}
