// +build arm64

package syscall

import "github.com/achilleasa/rpi-sched/kernel"

// sleepMsRaw executes in user mode: it places ms in x0, issues `svc 1`, and
// returns the elapsed milliseconds read back from x0 alongside the status
// read back from x7.
func sleepMsRaw(ms uint64) (elapsedMs uint64, status uint64)

var errSleepStatus = &kernel.Error{Module: "syscall", Message: "sleep: kernel returned non-zero status"}

// SleepMs blocks the calling process for at least ms milliseconds. It
// panics if the kernel reports a non-zero status, which can only happen if
// this binary's syscall number disagrees with the kernel's (spec.md §4.9).
func SleepMs(ms uint64) uint64 {
	elapsed, status := sleepMsRaw(ms)
	if status != 0 {
		kernel.Panic(errSleepStatus)
	}
	return elapsed
}
