package timer

import (
	"sync/atomic"
	"testing"
	"unsafe"

	"github.com/achilleasa/rpi-sched/kernel/mmio"
)

// fakeTimer backs a Timer with ordinary Go variables instead of real MMIO
// addresses, by pointing each mmio.Reg32 at the address of a host variable.
// atomic.Load/StoreUint32 on that address behaves identically to the real
// driver's access path, so the wraparound and tick_in logic can be
// exercised without hardware.
func fakeTimer(chi, clo uint32) (tm *Timer, chiVal, cloVal, csVal, cmp1Val *uint32) {
	chiVal, cloVal, csVal, cmp1Val = new(uint32), new(uint32), new(uint32), new(uint32)
	*chiVal, *cloVal = chi, clo

	tm = &Timer{regs: &registers{
		cs:  mmio.At(uintptr(unsafe.Pointer(csVal))),
		clo: mmio.At(uintptr(unsafe.Pointer(cloVal))),
		chi: mmio.At(uintptr(unsafe.Pointer(chiVal))),
	}}
	tm.regs.compare[1] = mmio.At(uintptr(unsafe.Pointer(cmp1Val)))
	return
}

func TestNow(t *testing.T) {
	tm, _, _, _, _ := fakeTimer(1, 0xFFFFFFF0)
	got := tm.Now()
	want := uint64(1)<<32 | 0xFFFFFFF0
	if got != want {
		t.Errorf("expected Now() = %#x; got %#x", want, got)
	}
}

func TestTickIn(t *testing.T) {
	tm, _, _, cs, cmp1 := fakeTimer(0, 1000)
	tm.TickIn(500)

	if got := atomic.LoadUint32(cmp1); got != 1500 {
		t.Errorf("expected compare[1] = 1500; got %d", got)
	}
	if got := atomic.LoadUint32(cs); got != match1 {
		t.Errorf("expected CS match-clear bit to be set; got %#x", got)
	}
}

func TestSpinSleepUs(t *testing.T) {
	tm, _, clo, _, _ := fakeTimer(0, 0)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			atomic.AddUint32(clo, 1)
		}
		close(done)
	}()

	tm.SpinSleepUs(1)
	<-done

	if got := atomic.LoadUint32(clo); got < 1 {
		t.Errorf("expected the counter to have advanced past the deadline; got %d", got)
	}
}
