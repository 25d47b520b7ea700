package heap

import "errors"

var (
	// ErrNilSegment indicates New was called without a segment.
	ErrNilSegment = errors.New("heap: nil segment")

	// ErrAlignStart indicates the segment break could not be moved to a 16-byte boundary.
	ErrAlignStart = errors.New("heap: cannot align segment start")
)
