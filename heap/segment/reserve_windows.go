//go:build windows

package segment

import (
	"golang.org/x/sys/windows"
)

func (r *Reserved) reserve(size uintptr) error {
	base, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return err
	}
	r.base = base
	return nil
}

func (r *Reserved) commit(off, n uintptr) error {
	_, err := windows.VirtualAlloc(r.base+off, n, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func (r *Reserved) decommit(off, n uintptr) error {
	return windows.VirtualFree(r.base+off, n, windows.MEM_DECOMMIT)
}

func (r *Reserved) release() error {
	if r.base == 0 {
		return nil
	}
	err := windows.VirtualFree(r.base, 0, windows.MEM_RELEASE)
	r.base = 0
	return err
}
