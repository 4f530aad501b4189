package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// DisplayInfoMessage prints an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// DisplayErrorMessage prints a standard Go error to the console.
func DisplayErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// DisplayDiagnostic prints a single checker diagnostic.  The path is the
// representative path of the file the diagnostic was reported against; it is
// overridden by the diagnostic's own file tag if one was merged in.
func DisplayDiagnostic(path string, diag *Diagnostic) {
	ErrorStyleBG.Print("Error")

	file := path
	if diag.File != "" {
		file = diag.File
	}

	if diag.Span == nil {
		ErrorColorFG.Println(fmt.Sprintf(" %s: %s", file, diag.Message))
	} else {
		ErrorColorFG.Println(fmt.Sprintf(
			" %s:%d:%d: %s",
			file, diag.Span.StartLine, diag.Span.StartCol, diag.Message,
		))
	}
}

// DisplayErrorLog prints every diagnostic accumulated in a log.
func DisplayErrorLog(path string, log *ErrorLog) {
	for _, diag := range log.Diags {
		DisplayDiagnostic(path, diag)
	}
}
