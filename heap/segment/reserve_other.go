//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package segment

import "github.com/joshuapare/brkalloc/internal/format"

// reserve falls back to ordinary Go memory where no mapping primitive is
// available. Pages are never actually returned to the OS.
func (r *Reserved) reserve(size uintptr) error {
	mem := make([]byte, size+r.page)
	addr := sliceAddr(mem)
	skip := format.AlignPage(addr, r.page) - addr
	r.mem = mem[skip : skip+size : skip+size]
	r.base = sliceAddr(r.mem)
	return nil
}

func (r *Reserved) commit(off, n uintptr) error { return nil }

// decommit zeroes the range so regrown pages look fresh, as they do on
// platforms that really drop them.
func (r *Reserved) decommit(off, n uintptr) error {
	clear(r.mem[off : off+n])
	return nil
}

func (r *Reserved) release() error {
	r.mem = nil
	return nil
}
