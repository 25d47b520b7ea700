//go:build !linux

package segment

// Brk is the process data segment. It is only available on linux.
type Brk struct{}

// ProcessBreak reports ErrUnsupported outside linux.
func ProcessBreak() (*Brk, error) {
	return nil, ErrUnsupported
}

// Break always returns 0.
func (*Brk) Break() uintptr { return 0 }

// Sbrk always fails.
func (*Brk) Sbrk(int) (uintptr, error) { return 0, ErrUnsupported }

var _ Segment = (*Brk)(nil)
