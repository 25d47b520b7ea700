// Package verify checks the structural invariants of a heap.
//
// It is used by tests and by brkctl after stress runs to confirm that
// concurrent allocation and release left the block list intact.
//
// Checked invariants:
//   - Head and Tail match the first and last block of the chain
//   - block addresses strictly increase (no cycles, no duplicates)
//   - every header and data region is 16-byte aligned
//   - blocks tile [Start, Break) back to back with no gaps or overlaps
//   - bytes held by in-use blocks never exceed the heap size
//
// All functions return *ValidationError on failure:
//
//	if err := verify.Heap(h); err != nil {
//	    var verr *verify.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Printf("%s at block %d: %s\n", verr.Type, verr.Index, verr.Message)
//	    }
//	}
package verify
