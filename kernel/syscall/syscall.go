// Package syscall implements the kernel-side syscall surface invoked by the
// exception dispatcher, and the user-side trampoline processes call into
// from EL0 (spec.md §4.9).
package syscall

import (
	"github.com/achilleasa/rpi-sched/kernel/process"
	"github.com/achilleasa/rpi-sched/kernel/timer"
	"github.com/achilleasa/rpi-sched/kernel/trap"
)

// Syscall numbers, encoded in the SVC instruction's immediate.
const (
	Sleep = 1
)

// nowFn is mocked by tests so sleepPredicate can be driven by a fake clock
// instead of the real system timer.
var nowFn = timer.Now

// Handle dispatches a decoded SVC immediate to the matching syscall
// implementation. An unrecognised number is silently ignored and the frame's
// x7 slot is left untouched; for a process that has not changed x7 since
// process.New, it still holds the non-zero sentinel written there, which the
// user-side trampoline reports as a failure (spec.md §7).
func Handle(num uint16, tf *trap.Frame) {
	switch num {
	case Sleep:
		sleep(tf)
	}
}

// sleep implements syscall 1: block the calling process until at least
// ms milliseconds (the value in tf.X0) have elapsed, then resume it with
// the approximate elapsed milliseconds in x0 and a zero status in x7
// (spec.md §4.9).
func sleep(tf *trap.Frame) {
	ms := tf.X0
	start := nowFn()
	poll := sleepPredicate(start, start+ms*1000)
	process.GlobalScheduler.Switch(process.State{Kind: process.Waiting, Poll: poll}, tf)
}

// sleepPredicate builds the wait predicate for a process sleeping from
// startUs until targetUs (both in microseconds): it fires once the
// monotonic counter reaches target, and on firing writes the elapsed
// milliseconds into x0 and a success status into x7. Split out from sleep
// so it can be driven by a fake clock under test (spec.md §8, "sleep lower
// bound").
func sleepPredicate(startUs, targetUs uint64) process.Predicate {
	return func(p *process.Process) bool {
		if nowFn() < targetUs {
			return false
		}
		elapsedMs := (nowFn() - startUs) / 1000
		p.Frame.X0 = elapsedMs
		*p.Frame.X7() = 0
		return true
	}
}
