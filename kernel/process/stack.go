package process

import "github.com/achilleasa/rpi-sched/kernel/mem/alloc"

// stackSize is the size, in bytes, of every process's stack. It is fixed
// rather than caller-specified since this core never creates a process from
// a loaded ELF image with its own stack requirements (spec.md §1 non-goal).
const stackSize = 16 * 1024

// stackAlign is the alignment both the stack's base and its top must
// satisfy; AArch64 requires a 16-byte aligned SP at every exception level.
const stackAlign = 16

// Stack is a heap-backed, fixed-size region reserved for one process's
// execution stack.
type Stack struct {
	base uintptr
	top  uintptr
}

// NewStack reserves a fresh stack region from the global allocator. It
// fails only when the allocator is exhausted.
func NewStack() (*Stack, error) {
	base, err := alloc.Alloc(alloc.Layout{Size: stackSize, Align: stackAlign})
	if err != nil {
		return nil, err
	}

	return &Stack{base: base, top: base + stackSize}, nil
}

// Top returns the initial stack pointer value for this stack: the address
// just past the end of the region (the stack grows down from it), 16-byte
// aligned.
func (s *Stack) Top() uint64 {
	return uint64(s.top &^ (stackAlign - 1))
}
