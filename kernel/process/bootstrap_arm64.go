// +build arm64

package process

import "github.com/achilleasa/rpi-sched/kernel/trap"

// bootstrap performs the one-time handoff into the first process's trap
// frame: it never returns (spec.md §4.8.3 step 5, §9 "the boot trampoline
// that consumes an initial TrapFrame address").
func bootstrap(tf *trap.Frame)
