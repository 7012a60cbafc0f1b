package fixer

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/junitmig/internal/javasrc"
)

// ErrUnparsableOutput reports rewritten source that no longer parses. The
// original file is left as it was.
var ErrUnparsableOutput = errors.New("rewritten source does not parse")

// verify re-parses the printed output before it may replace the input.
func verify(filename string, out []byte) error {
	if _, err := javasrc.Parse(filename, out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnparsableOutput, err)
	}
	return nil
}
