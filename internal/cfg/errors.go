package cfg

import (
	"errors"
	"fmt"
)

// ErrBuilderReused is returned when a Builder is asked to build a second function.
var ErrBuilderReused = errors.New("cfg: builder already used")

// MalformedInstructionError reports an instruction the builder cannot place
// in the graph. Index is the position inside the block, or -1 when the
// problem is the block's label itself.
type MalformedInstructionError struct {
	Block  string
	Index  int
	Op     string
	Reason string
}

func (e *MalformedInstructionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("block %q: %s", e.Block, e.Reason)
	}
	return fmt.Sprintf("block %q: instruction %d (%s): %s", e.Block, e.Index, e.Op, e.Reason)
}

// DanglingLabelError reports a jump target that names no block.
type DanglingLabelError struct {
	Block string
	Label string
}

func (e *DanglingLabelError) Error() string {
	return fmt.Sprintf("block %q: jump target %q does not name a block", e.Block, e.Label)
}

// DuplicateBlockError reports two blocks with the same name.
type DuplicateBlockError struct {
	Name string
}

func (e *DuplicateBlockError) Error() string {
	return fmt.Sprintf("duplicate block %q", e.Name)
}
