package parse

import "fmt"

// Diagnostic carries a parser message and its source position, per
// spec.md §4.1 ("a diagnostic carries a message and source position").
type Diagnostic struct {
	Message string
	Pos     int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s", d.Pos, d.Message)
}
