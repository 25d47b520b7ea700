// Package format holds the layout constants shared by the allocator and its
// segments: the block alignment every data region honours and the page
// granularity segments commit memory in.
package format

import "os"

const (
	// Alignment is the byte boundary every header, and therefore every data
	// region handed to a caller, starts on.
	Alignment = 16

	// AlignmentMask is Alignment-1, used for rounding.
	AlignmentMask = Alignment - 1
)

// PageSize is the OS page size segments commit and decommit memory in.
var PageSize = uintptr(os.Getpagesize())
