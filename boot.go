package main

import "github.com/achilleasa/rpi-sched/kernel/kmain"

// main is the only Go symbol visible from the rt0 initialization code (the
// linker-provided `_start` stub named in spec.md's out-of-scope list). It is
// intentionally defined to prevent the Go compiler from optimizing away the
// kernel code below it, which is otherwise unreachable from the point of
// view of a normal build.
//
// main is invoked by _start after it has set up a kernel stack and zeroed
// the BSS section, with the linker-provided heap region bounds in its first
// two argument registers. It is not expected to return; if it does, _start
// halts the CPU.
func main(heapStart, heapEnd uintptr) {
	kmain.Kmain(heapStart, heapEnd)
}
