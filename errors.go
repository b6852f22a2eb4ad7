package efg

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUniformNotImplemented is returned when expected values are requested
// with the ZeroBranchUniform policy.
var ErrUniformNotImplemented = errors.New("uniform zero-branch policy is not implemented")

// ParseError reports a malformed game file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

func parseErrorf(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an operation that is not defined at the
// node a GameState currently points at.
type InvalidStateError struct {
	Op     string
	NodeID int
	Msg    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: invalid state at node %d: %s", e.Op, e.NodeID, e.Msg)
}
