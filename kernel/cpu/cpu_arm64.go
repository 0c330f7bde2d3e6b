// +build arm64

package cpu

// Halt stops instruction execution. It never returns.
func Halt()

// EnableIRQs clears the IRQ mask bit (DAIF.I) so hardware interrupts are
// delivered to the exception vector again.
func EnableIRQs()

// DisableIRQs sets the IRQ mask bit (DAIF.I), preventing any further IRQ
// from being taken until EnableIRQs is called. It does not affect FIQ, SError
// or debug exceptions.
func DisableIRQs()

// WFI executes the wait-for-interrupt instruction, halting the core in a
// low-power state until the next unmasked IRQ (or FIQ) arrives.
func WFI()

// TPIDR returns the value currently stored in TPIDR_EL0, the thread-pointer
// register the scheduler repurposes to hold the running process's ID.
func TPIDR() uint64
