package kmain

import (
	"github.com/achilleasa/rpi-sched/kernel/kfmt/early"
	"github.com/achilleasa/rpi-sched/kernel/syscall"
)

// shellEntry and periodicPrintEntry are the two seed processes Start hands
// off to (spec.md §8 end-to-end scenario 2, supplemented per
// original_source's func_shell/func_periodic_print). The real shell REPL is
// an out-of-scope user-land payload (spec.md §1); these are deliberately
// minimal stand-ins that still exercise the syscall layer and the
// scheduler's round-robin switch between two always-ready-after-sleep
// processes.

// shellEntry never returns; it is the initial process's ELR.
func shellEntry() {
	for {
		early.Printf("!shell>\n")
		syscall.SleepMs(1000)
	}
}

// periodicPrintEntry never returns; it is the second seed process's ELR.
func periodicPrintEntry() {
	for {
		early.Printf("[tick]\n")
		syscall.SleepMs(2000)
	}
}
