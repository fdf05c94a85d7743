package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"falsec/report"
)

const usage = `Usage: falsec [flags|options] <input> [<output>]

If <output> is omitted, it is derived from <input> by stripping its extension
and appending .ll.

Flags:
------
-h, --help      Displays usage information (ie. this text).

Options:
--------
-ll, --loglevel   Sets the compiler's log-level.  Valid values are:
                    - "verbose" for outputting all messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
`

// printUsage prints the usage message and exits the compiler with the given
// exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"ll":        {},
	"-loglevel": {},
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument; if the argument is positional, this value
// is empty.  The second value is the value of the argument.  The final value
// indicates whether or not there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if strings.HasPrefix(arg, "-") { // flag or option
		name := arg[1:]

		if _, ok := options[name]; ok { // option
			// Make sure the option value exists.
			if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
				value := ap.args[ap.ndx]
				ap.ndx++
				return name, value, true
			}

			argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
		}

		// flag
		return name, "", true
	}

	// positional
	return "", arg, true
}

// logLevels maps log-level option values to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

// NewCompilerFromArgs creates a new compiler from the program's command-line
// arguments.  Invalid arguments terminate the program.
func NewCompilerFromArgs() *Compiler {
	ap := &argParser{args: os.Args[1:]}

	var positionals []string
	logLevelName := ""

	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		switch name {
		case "":
			positionals = append(positionals, value)
		case "h", "-help":
			printUsage(0)
		case "ll", "-loglevel":
			if _, ok := logLevels[value]; !ok {
				argumentError("invalid log level: %s", value)
			}

			logLevelName = value
		default:
			argumentError("unknown argument: %s", name)
		}
	}

	if len(positionals) == 0 {
		fmt.Fprintln(os.Stderr, "Filename required")
		os.Exit(1)
	} else if len(positionals) > 2 {
		argumentError("expected at most two positional arguments")
	}

	inputPath := positionals[0]

	// the build profile supplies defaults; arguments override it
	profile, err := loadProfile(inputPath)
	if err != nil {
		report.ReportFatal("failed to load build profile: %s", err)
	}

	outputPath := profile.OutputPath
	if len(positionals) == 2 {
		outputPath = positionals[1]
	}
	if outputPath == "" {
		outputPath = deriveOutputPath(inputPath)
	}

	if logLevelName == "" {
		logLevelName = profile.LogLevel
	}
	logLevel, ok := logLevels[logLevelName]
	if !ok {
		logLevel = report.LogLevelVerbose
	}
	report.InitReporter(logLevel)

	return NewCompiler(inputPath, outputPath)
}

// deriveOutputPath derives the default output path from the input path by
// stripping the first extension from the file name and appending `.ll`.
func deriveOutputPath(inputPath string) string {
	dir, base := filepath.Split(inputPath)
	if ndx := strings.Index(base, "."); ndx != -1 {
		base = base[:ndx]
	}

	return dir + base + ".ll"
}
