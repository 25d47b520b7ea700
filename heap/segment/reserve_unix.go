//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package segment

import (
	"errors"

	"golang.org/x/sys/unix"
)

func (r *Reserved) reserve(size uintptr) error {
	mem, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return err
	}
	r.mem = mem
	r.base = sliceAddr(mem)
	return nil
}

func (r *Reserved) commit(off, n uintptr) error {
	return unix.Mprotect(r.mem[off:off+n], unix.PROT_READ|unix.PROT_WRITE)
}

// decommit hands the pages back to the kernel and makes them inaccessible,
// so a stale pointer above the break faults instead of reading old data.
func (r *Reserved) decommit(off, n uintptr) error {
	span := r.mem[off : off+n]
	if err := unix.Madvise(span, unix.MADV_DONTNEED); err != nil {
		return err
	}
	return unix.Mprotect(span, unix.PROT_NONE)
}

func (r *Reserved) release() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}
