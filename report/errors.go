package report

import "fmt"

func (d *Diagnostic) Error() string {
	return d.String()
}

// Raise creates a new diagnostic suitable for raising via `panic` inside a
// traversal whose entry point recovers it into an error log.
func Raise(span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Message: fmt.Sprintf(msg, args...), Span: span}
}
