package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/confgrid/internal/app"
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

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("confgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
confgrid - reactive configuration for data-loading and multi-task training jobs.

Usage:
  confgrid [options] [EDIT_PATH]

Arguments:
  EDIT_PATH
    Path to a single .hcl edit file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	editFlag := flagSet.String("edits", "", "Path to the edit file or directory.")
	eFlag := flagSet.String("e", "", "Path to the edit file or directory (shorthand).")
	var sets stringList
	flagSet.Var(&sets, "set", "Apply a single edit of the form path=value. Repeatable.")
	dumpFlag := flagSet.String("dump", "", "Print the flattened tree. Options: 'text' or 'yaml'.")
	assembleFlag := flagSet.Bool("assemble", true, "Assemble the runtime plan after applying edits.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *editFlag != "" {
		path = *editFlag
	} else if *eFlag != "" {
		path = *eFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	dumpFormat := strings.ToLower(*dumpFlag)
	switch dumpFormat {
	case "", "text", "yaml":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid dump: must be 'text' or 'yaml'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		EditPath:   path,
		Sets:       sets,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		DumpFormat: dumpFormat,
		Assemble:   *assembleFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
