// Package sync provides the locking primitive used to guard the scheduler's
// shared state (§5 of spec.md: "the scheduler is held behind a global mutex
// (spinlock acquired with interrupts masked, released with interrupts
// restored)").
package sync

import (
	"sync/atomic"

	"github.com/achilleasa/rpi-sched/kernel/cpu"
)

var (
	// yieldFn is swapped out by tests so a busy Acquire loop can't
	// starve the goroutine scheduler while running hosted.
	yieldFn func()
)

// Spinlock implements a lock where each caller trying to acquire it
// busy-waits until the lock becomes available. Unlike a plain busy-wait
// lock, Acquire also masks IRQs for the caller's core: since this kernel is
// single-CPU, any IRQ handler that tried to re-enter a critical section
// already held by the code it interrupted would deadlock, so IRQs stay
// masked for the entire time the lock is held. Release unmasks them again.
//
// Re-acquiring a lock already held by the current caller deadlocks, same as
// any other spinlock.
type Spinlock struct {
	state uint32
}

// Acquire masks IRQs and blocks until the lock can be acquired.
func (l *Spinlock) Acquire() {
	cpu.DisableIRQs()
	for !atomic.CompareAndSwapUint32(&l.state, 0, 1) {
		if yieldFn != nil {
			yieldFn()
		}
	}
}

// TryToAcquire attempts to acquire the lock without blocking. It masks IRQs
// and returns true only if the lock was free; on failure it unmasks IRQs
// before returning false. It does not save the previous mask state, so a
// caller that had IRQs masked before the call finds them unmasked after a
// failed attempt.
func (l *Spinlock) TryToAcquire() bool {
	cpu.DisableIRQs()
	if atomic.CompareAndSwapUint32(&l.state, 0, 1) {
		return true
	}
	cpu.EnableIRQs()
	return false
}

// Release relinquishes a held lock and restores IRQs. Calling Release while
// the lock is free has no effect beyond unmasking IRQs.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
	cpu.EnableIRQs()
}
