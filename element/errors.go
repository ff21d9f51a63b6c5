package element

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
)

var (
	// ErrUnsupported reports an operation the topology does not provide.
	ErrUnsupported = errors.New("unsupported operation for this topology")
	// ErrDegenerate reports a zero or inverted Jacobian, or a zero measure.
	ErrDegenerate = errors.New("degenerate element geometry")
	// ErrMismatch reports incompatible elements combined in one operation.
	ErrMismatch = errors.New("element mismatch")
)

// wrapf attaches context to one of the sentinel errors.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return chk.Err("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
