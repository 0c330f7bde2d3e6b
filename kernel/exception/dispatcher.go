// Package exception is the high-level half of the exception dispatcher: the
// assembly vector (an external collaborator, spec.md §4.4) saves a trap
// frame and calls Handle, which classifies the exception and routes it to
// the syscall layer, the scheduler, or a fault log (spec.md §4.6).
package exception

import (
	"github.com/achilleasa/rpi-sched/kernel/irq"
	"github.com/achilleasa/rpi-sched/kernel/kfmt/early"
	"github.com/achilleasa/rpi-sched/kernel/process"
	"github.com/achilleasa/rpi-sched/kernel/syscall"
	"github.com/achilleasa/rpi-sched/kernel/timer"
	"github.com/achilleasa/rpi-sched/kernel/trap"
)

// TICK is the timer-1 rearm period in microseconds: deliberately coarse
// (two seconds) so a human watching the console can see each switch
// (spec.md §4.6).
const TICK uint32 = 2 * 1000 * 1000

// BreakpointHandler runs when a Brk instruction traps. The core does not
// implement a shell (spec.md §1 non-goal); callers that embed one can
// replace this hook to drop into it. The default just logs the immediate.
var BreakpointHandler = func(imm uint16, tf *trap.Frame) {
	early.Printf("[exception] brk #%d at elr=%x\n", imm, tf.ELR)
}

// Handle is called by the assembly vector with the decoded exception
// source/kind, the raw ESR, and the trap frame it just saved. It never
// holds the scheduler lock across return: every scheduler call inside it
// acquires and releases within this function.
func Handle(info trap.Info, esr uint32, tf *trap.Frame) {
	switch info.Kind {
	case trap.Synchronous:
		handleSynchronous(esr, tf)
	case trap.Irq:
		handleIRQ(tf)
	case trap.Fiq, trap.SError:
		// Currently ignored (spec.md §4.6).
	}

	tf.ClearIRQMask()
}

// handleSynchronous implements the Synchronous arm of spec.md §4.6:
// advance past the faulting instruction, decode the syndrome, and route
// Svc/Brk to their handlers; anything else is logged.
func handleSynchronous(esr uint32, tf *trap.Frame) {
	tf.ELR += 4

	syndrome := trap.DecodeSyndrome(esr)
	switch syndrome.Kind {
	case trap.Svc:
		syscall.Handle(syndrome.Imm, tf)
	case trap.Brk:
		BreakpointHandler(syndrome.Imm, tf)
	case trap.DataAbort, trap.InstructionAbort:
		early.Printf("[exception] fault: kind=%d abort_fault=%d level=%d elr=%x\n",
			uint8(syndrome.Kind), uint8(syndrome.AbortFault), syndrome.AbortLevel, tf.ELR)
	default:
		early.Printf("[exception] unhandled synchronous exception: kind=%d elr=%x\n", uint8(syndrome.Kind), tf.ELR)
	}
}

// handleIRQ implements the Irq arm of spec.md §4.6: for a pending Timer1
// line, acknowledge and rearm it, then hand control to the scheduler.
func handleIRQ(tf *trap.Frame) {
	if irq.IsPending(irq.Timer1) {
		timer.TickIn(TICK)
		process.GlobalScheduler.Switch(process.State{Kind: process.Ready}, tf)
	}
}
