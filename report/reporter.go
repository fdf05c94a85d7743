package report

// Enumeration of the reporter's log levels.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// reporter is responsible for handling all error and message reporting within
// the compiler.  There is one global reporter shared by a compilation.
type reporter struct {
	// The log level the compiler is currently set to.
	logLevel int

	// Whether any errors have been reported.
	isErr bool
}

// rep is the global reference to the shared reporter.
var rep = reporter{logLevel: LogLevelVerbose}

// InitReporter initializes the global reporter with the provided log level.
func InitReporter(logLevel int) {
	rep = reporter{logLevel: logLevel}
}
