package notation

import "fmt"

// SyntaxError reports malformed notation. Line and Col are 1-based.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("notation: %d:%d: %s", e.Line, e.Col, e.Msg)
}
