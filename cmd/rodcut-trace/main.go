package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/piwi3910/RodCut/internal/cli"
	"github.com/piwi3910/RodCut/internal/logs"
)

// main is the entrypoint for the rodcut-trace command.
func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, configures logging and runs the command.
func run(outW, logW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger, closeLog, err := logs.New(logs.Options{
		Level:  config.LogLevel,
		Format: config.LogFormat,
		File:   config.LogFile,
		Output: logW,
	})
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	defer closeLog()
	slog.SetDefault(logger)

	return cli.Run(outW, config, logger)
}
