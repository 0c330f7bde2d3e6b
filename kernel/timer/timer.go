// Package timer drives the BCM2837 free-running system timer: a 64-bit
// microsecond counter plus four independent compare channels. This core
// only arms channel 1 (spec.md §4.2).
package timer

import "github.com/achilleasa/rpi-sched/kernel/mmio"

// regBase is IO_BASE + 0x3000 (spec.md §6).
const regBase = mmio.IOBase + 0x3000

// Match bit 1 of CS acknowledges (and re-arms) the channel-1 compare.
const match1 = uint32(1) << 1

type registers struct {
	cs      mmio.Reg32
	clo     mmio.Reg32
	chi     mmio.Reg32
	compare [4]mmio.Reg32
}

func newRegisters() *registers {
	return &registers{
		cs:  mmio.At(regBase + 0x00),
		clo: mmio.At(regBase + 0x04),
		chi: mmio.At(regBase + 0x08),
		compare: [4]mmio.Reg32{
			mmio.At(regBase + 0x0C),
			mmio.At(regBase + 0x10),
			mmio.At(regBase + 0x14),
			mmio.At(regBase + 0x18),
		},
	}
}

// Timer is a handle to the system timer registers.
type Timer struct {
	regs *registers
}

// New returns a handle to the BCM2837 system timer.
func New() *Timer {
	return &Timer{regs: newRegisters()}
}

// Now returns the monotonic microsecond counter. CHI and CLO are read
// separately, so a low-half wraparound between the two reads would produce
// a value that is off by 2^32; Now re-reads CHI and, if it changed, re-reads
// CLO against the new high half to rule that out.
func (t *Timer) Now() uint64 {
	hi := t.regs.chi.Load()
	lo := t.regs.clo.Load()
	if hi2 := t.regs.chi.Load(); hi2 != hi {
		hi = hi2
		lo = t.regs.clo.Load()
	}
	return uint64(hi)<<32 | uint64(lo)
}

// TickIn arms channel 1 to match us microseconds from now and clears any
// previously pending channel-1 match.
func (t *Timer) TickIn(us uint32) {
	future := uint32(t.Now() + uint64(us))
	t.regs.compare[1].Store(future)
	t.regs.cs.Store(match1)
}

// SpinSleepUs busy-waits until us microseconds have elapsed. It must only be
// used before interrupts are live (spec.md §4.2); afterwards, syscall.SleepMs
// yields the CPU to other processes instead.
func (t *Timer) SpinSleepUs(us uint64) {
	start := t.Now()
	for t.Now()-start < us {
	}
}

// SpinSleepMs is SpinSleepUs scaled to milliseconds.
func (t *Timer) SpinSleepMs(ms uint64) {
	t.SpinSleepUs(ms * 1000)
}

var shared = New()

// Now returns the monotonic microsecond counter using the package's shared
// Timer handle.
func Now() uint64 { return shared.Now() }

// TickIn arms channel 1 using the package's shared Timer handle.
func TickIn(us uint32) { shared.TickIn(us) }

// SpinSleepUs busy-waits using the package's shared Timer handle.
func SpinSleepUs(us uint64) { shared.SpinSleepUs(us) }

// SpinSleepMs busy-waits using the package's shared Timer handle.
func SpinSleepMs(ms uint64) { shared.SpinSleepMs(ms) }
