// Package alloc provides the bump allocator that process stacks are carved
// from. Trap frames and the run queue are ordinary Go allocations and do not
// go through it. It never frees; the core has no notion of process teardown (spec.md §1
// non-goal), so reclaiming memory would add bookkeeping nothing exercises.
package alloc

import (
	"github.com/achilleasa/rpi-sched/kernel/errors"
)

// Layout describes the size and alignment of a requested allocation. Align
// must be a power of two; Size must be greater than zero.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// Bump hands out memory by advancing a pointer through a fixed region. It
// never reclaims a block once returned from Alloc.
type Bump struct {
	current uintptr
	end     uintptr
}

// global is the allocator the kernel boot path installs via Init and every
// other package allocates through.
var global Bump

// Init carves out the region [start, end) for the global allocator. It must
// be called exactly once, before any call to the package-level Alloc.
// Allocators built with New do not depend on it.
func Init(start, end uintptr) {
	global = Bump{current: start, end: end}
}

// New constructs a standalone bump allocator over [start, end). Tests use
// this to exercise the allocator without touching the package-level global.
func New(start, end uintptr) *Bump {
	return &Bump{current: start, end: end}
}

// alignUp rounds addr up to the next multiple of align, which must be a
// power of two.
func alignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// Alloc reserves a block meeting layout's size and alignment. The returned
// address is never reused by a later call, even though the block is never
// explicitly freed.
func (b *Bump) Alloc(layout Layout) (uintptr, error) {
	if layout.Size == 0 {
		return 0, errors.ErrAllocUnsupported
	}

	start := alignUp(b.current, layout.Align)
	end := start + layout.Size
	if end > b.end {
		return 0, errors.ErrAllocExhausted
	}

	b.current = end
	return start, nil
}

// Dealloc is a no-op; this allocator never reclaims memory.
func (b *Bump) Dealloc(addr uintptr, layout Layout) {}

// Alloc reserves a block from the global allocator. Init must have run
// first.
func Alloc(layout Layout) (uintptr, error) {
	return global.Alloc(layout)
}

// Dealloc is a no-op; present for symmetry with Alloc.
func Dealloc(addr uintptr, layout Layout) {
	global.Dealloc(addr, layout)
}
