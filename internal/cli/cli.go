package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/RodCut/internal/logs"
	"github.com/piwi3910/RodCut/internal/project"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Config is the parsed command line.
type Config struct {
	RodLength int
	Prices    string
	Preset    string
	CSVIn     string
	XLSXIn    string

	PDF   string
	XLSX  string
	DXF   string
	JSON  string
	GCode string
	Share string

	Profile string
	Steps   bool
	Compare bool

	LogLevel   string
	LogFormat  string
	LogFile    string
	ConfigPath string
}

// Parse processes command-line arguments. It returns the parsed Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("rodcut-trace", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
rodcut-trace - solve a rod cutting price table and export the trace.

Usage:
  rodcut-trace [options]

With no price source the default preset is solved.

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &Config{}
	flagSet.IntVar(&cfg.RodLength, "n", 0, "Rod length. 0 takes it from the price source.")
	flagSet.StringVar(&cfg.Prices, "prices", "", "Comma or space separated prices for lengths 1..n.")
	flagSet.StringVar(&cfg.Preset, "preset", "", "Built-in or custom preset ID or label.")
	flagSet.StringVar(&cfg.CSVIn, "csv", "", "Import the price table from a CSV file.")
	flagSet.StringVar(&cfg.XLSXIn, "xlsx-in", "", "Import the price table from an Excel workbook.")

	flagSet.StringVar(&cfg.PDF, "pdf", "", "Write a PDF trace report to this path.")
	flagSet.StringVar(&cfg.XLSX, "xlsx", "", "Write an Excel workbook to this path.")
	flagSet.StringVar(&cfg.DXF, "dxf", "", "Write a DXF cut diagram to this path.")
	flagSet.StringVar(&cfg.JSON, "json", "", "Write the trace as JSON to this path.")
	flagSet.StringVar(&cfg.GCode, "gcode", "", "Write a GCode cut program to this path.")
	flagSet.StringVar(&cfg.Share, "share", "", "Write a share card PDF with a QR code to this path.")

	flagSet.StringVar(&cfg.Profile, "profile", "", "GCode profile name. Defaults to the configured profile.")
	flagSet.BoolVar(&cfg.Steps, "steps", false, "Print the explanation of every step.")
	flagSet.BoolVar(&cfg.Compare, "compare", false, "Compare the table with what-if price scenarios.")

	flagSet.StringVar(&cfg.LogLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&cfg.LogFile, "log-file", "", "Also write JSON logs to this file.")
	flagSet.StringVar(&cfg.ConfigPath, "config", project.DefaultConfigPath(), "Path to the application config file.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, usageError("unexpected argument %q", flagSet.Arg(0))
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	if _, err := logs.ParseLevel(cfg.LogLevel); err != nil {
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if cfg.RodLength < 0 {
		return nil, false, usageError("invalid -n: rod length cannot be negative")
	}

	sources := 0
	for _, s := range []string{cfg.Prices, cfg.Preset, cfg.CSVIn, cfg.XLSXIn} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return nil, false, usageError("choose one price source: -prices, -preset, -csv or -xlsx-in")
	}

	return cfg, false, nil
}
