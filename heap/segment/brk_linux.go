//go:build linux

package segment

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Brk is the process data segment, moved with brk(2).
type Brk struct{}

var processBreak = &Brk{}

// ProcessBreak returns the process-wide break segment. Every call returns the
// same value; the caller must be its only user.
func ProcessBreak() (*Brk, error) {
	return processBreak, nil
}

// Break returns the current process break.
func (*Brk) Break() uintptr {
	cur, _, _ := unix.Syscall(unix.SYS_BRK, 0, 0, 0)
	return cur
}

// Sbrk moves the process break by delta bytes and returns the previous break.
// The kernel reports failure by leaving the break where it was.
func (b *Brk) Sbrk(delta int) (uintptr, error) {
	old := b.Break()
	if delta == 0 {
		return old, nil
	}
	want := old + uintptr(delta)
	if delta < 0 && want > old {
		return 0, fmt.Errorf("%w: shrink by %d from %#x", ErrUnderflow, -delta, old)
	}
	if delta > 0 && want < old {
		return 0, fmt.Errorf("%w: grow by %d from %#x", ErrExhausted, delta, old)
	}
	got, _, _ := unix.Syscall(unix.SYS_BRK, want, 0, 0)
	if got != want {
		if delta < 0 {
			return 0, fmt.Errorf("%w: brk(%#x) left break at %#x", ErrUnderflow, want, got)
		}
		return 0, fmt.Errorf("%w: brk(%#x) left break at %#x", ErrExhausted, want, got)
	}
	return old, nil
}

var _ Segment = (*Brk)(nil)
