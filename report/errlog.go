package report

import (
	"fmt"
	"strings"
)

// Diagnostic is a single checker diagnostic: a message paired with the span of
// source text it applies to.  The span may be nil for diagnostics that have no
// usable source location (eg. errors produced while loading an import).
type Diagnostic struct {
	// The diagnostic message.
	Message string

	// The span over which the diagnostic occurs.
	Span *TextSpan

	// The file the diagnostic was reported in.  Empty unless the diagnostic
	// was merged in from another file's log.
	File string
}

func (d *Diagnostic) String() string {
	if d.Span == nil {
		return d.Message
	}

	if d.File == "" {
		return fmt.Sprintf("%d:%d: %s", d.Span.StartLine, d.Span.StartCol, d.Message)
	}

	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Span.StartLine, d.Span.StartCol, d.Message)
}

// -----------------------------------------------------------------------------

// ErrorLog accumulates diagnostics produced while checking a program.  Pushing
// a diagnostic never stops the traversal that produced it: the checker keeps
// walking so that as many faults as possible are reported per pass.  The log
// itself implements `error` so it can be surfaced directly at pass boundaries.
type ErrorLog struct {
	// The accumulated diagnostics in push order.
	Diags []*Diagnostic
}

// NewErrorLog creates a new, empty error log.
func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

// Push appends a new diagnostic for the given span to the log.  The message is
// formatted with the given arguments.
func (log *ErrorLog) Push(span *TextSpan, msg string, args ...interface{}) {
	log.Diags = append(log.Diags, &Diagnostic{
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	})
}

// Merge absorbs another log's diagnostics verbatim, tagging each with the file
// they originated from.  This is used when an imported file type-checks with
// its own errors.
func (log *ErrorLog) Merge(other *ErrorLog, file string) {
	for _, diag := range other.Diags {
		merged := *diag
		if merged.File == "" {
			merged.File = file
		}

		log.Diags = append(log.Diags, &merged)
	}
}

// HasError returns whether any diagnostics have been pushed.
func (log *ErrorLog) HasError() bool {
	return len(log.Diags) > 0
}

func (log *ErrorLog) Error() string {
	sb := strings.Builder{}

	for i, diag := range log.Diags {
		if i > 0 {
			sb.WriteRune('\n')
		}

		sb.WriteString(diag.String())
	}

	return sb.String()
}
