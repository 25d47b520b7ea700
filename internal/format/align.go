package format

// Align16 returns n aligned up to the next 16-byte boundary.
//
// Example:
//
//	Align16(0)  = 0
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n uintptr) uintptr {
	return (n + AlignmentMask) &^ AlignmentMask
}

// IsAligned16 reports whether p sits on a 16-byte boundary.
func IsAligned16(p uintptr) bool {
	return p&AlignmentMask == 0
}

// AlignPage returns n aligned up to a multiple of page, which must be a power of two.
//
// Example (page = 4096):
//
//	AlignPage(1, 4096)    = 4096
//	AlignPage(4096, 4096) = 4096
//	AlignPage(4097, 4096) = 8192
func AlignPage(n, page uintptr) uintptr {
	return (n + page - 1) &^ (page - 1)
}
