package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG  = pterm.FgLightGreen
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	errorStyleBG.Print("internal compiler error")
	errorColorFG.Println(" " + message)
	fmt.Println("This error was not supposed to happen: please open an issue on GitHub")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("fatal error")
	errorColorFG.Println(" " + message)
}

// displayCompileMessage displays a compilation error.  The label is the string
// to prefix the message with: eg. if we want to display an error, the label is
// "error".
func displayCompileMessage(label, reprPath string, span *TextSpan, message string) {
	if span == nil {
		fmt.Printf("%s: %s: %s\n", reprPath, label, message)
	} else {
		fmt.Printf("%s:%d:%d: %s: %s\n", reprPath, span.StartLine+1, span.StartCol+1, label, message)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Printf("%s: error: %s\n", reprPath, err)
}

// displayInfo displays an informational message about compilation progress.
func displayInfo(message string) {
	infoColorFG.Println(message)
}
