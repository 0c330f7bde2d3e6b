package kmain

import (
	"reflect"

	"github.com/achilleasa/rpi-sched/kernel"
	"github.com/achilleasa/rpi-sched/kernel/exception"
	"github.com/achilleasa/rpi-sched/kernel/mem/alloc"
	"github.com/achilleasa/rpi-sched/kernel/process"
)

var errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}

// Kmain is the only Go symbol visible from the rt0 startup stub (the
// linker-provided _start, an out-of-scope collaborator per spec.md §1).
// rt0 invokes Kmain after setting up a kernel stack and zeroing BSS, passing
// the bounds of the heap region the linker script reserves for the bump
// allocator.
//
// Kmain is not expected to return: process.Start hands off to the
// architecture-specific boot trampoline, which performs an exception return
// into the first seed process and never comes back here.
//
//go:noinline
func Kmain(heapStart, heapEnd uintptr) {
	alloc.Init(heapStart, heapEnd)

	shellPC := reflect.ValueOf(shellEntry).Pointer()
	periodicPC := reflect.ValueOf(periodicPrintEntry).Pointer()

	if err := process.Start(exception.TICK, shellPC, periodicPC); err != nil {
		kernel.Panic(err)
	}

	// Use kernel.Panic instead of panic to prevent the compiler from
	// treating kernel.Panic as dead-code and eliminating it.
	kernel.Panic(errKmainReturned)
}
