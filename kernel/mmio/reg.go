// Package mmio provides typed, volatile access to the 32-bit memory-mapped
// registers that the timer and interrupt-controller drivers sit on top of
// (spec.md §4.1). Every load re-fetches from the device; every store is
// emitted exactly once and is never reordered against another mmio store,
// which is what the peripherals in §6 require.
//
// No third-party register-abstraction library in the retrieval pack targets
// a hosted (non-TinyGo) Go build, so this package uses sync/atomic over a
// raw address cast through unsafe.Pointer in the same spirit as the
// teacher's kernel/driver/video/console package mapping a physical
// framebuffer address into a Go slice header.
package mmio

import (
	"sync/atomic"
	"unsafe"
)

// Reg32 addresses a single 32-bit hardware register.
type Reg32 struct {
	addr uintptr
}

// At returns a Reg32 bound to the given physical (or, once the MMU is live,
// virtual) address. addr must be 4-byte aligned.
func At(addr uintptr) Reg32 {
	return Reg32{addr: addr}
}

// Load issues a volatile read of the register.
func (r Reg32) Load() uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(r.addr)))
}

// Store issues a volatile write of v to the register.
func (r Reg32) Store(v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(r.addr)), v)
}

// SetBits performs a volatile read-modify-write that ORs mask into the
// register's current value. Peripherals whose enable/disable registers are
// write-1-to-act (§4.3) should prefer Store(mask) instead, since a
// read-modify-write is unnecessary and, for those registers, would observe
// already-acted-upon bits rather than the register's true reset state.
func (r Reg32) SetBits(mask uint32) {
	r.Store(r.Load() | mask)
}
