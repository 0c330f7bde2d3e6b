package irq

import (
	"testing"
	"unsafe"

	"github.com/achilleasa/rpi-sched/kernel/mmio"
)

// fakeController backs a Controller with ordinary Go variables instead of
// real MMIO addresses, the same technique kernel/timer's tests use.
func fakeController() (c *Controller, regs *registers) {
	r := &registers{}
	vals := make([]uint32, 10)
	ptrs := [10]*uint32{}
	for i := range ptrs {
		ptrs[i] = &vals[i]
	}
	r.irqBasicPending = mmio.At(uintptr(unsafe.Pointer(ptrs[0])))
	r.irqPending1 = mmio.At(uintptr(unsafe.Pointer(ptrs[1])))
	r.irqPending2 = mmio.At(uintptr(unsafe.Pointer(ptrs[2])))
	r.fiqControl = mmio.At(uintptr(unsafe.Pointer(ptrs[3])))
	r.enableIRQ1 = mmio.At(uintptr(unsafe.Pointer(ptrs[4])))
	r.enableIRQ2 = mmio.At(uintptr(unsafe.Pointer(ptrs[5])))
	r.enableBasicIRQs = mmio.At(uintptr(unsafe.Pointer(ptrs[6])))
	r.disableIRQ1 = mmio.At(uintptr(unsafe.Pointer(ptrs[7])))
	r.disableIRQ2 = mmio.At(uintptr(unsafe.Pointer(ptrs[8])))
	r.disableBasicIRQs = mmio.At(uintptr(unsafe.Pointer(ptrs[9])))
	return &Controller{regs: r}, r
}

func TestEnableUartSetsBit25OfEnableIRQ2(t *testing.T) {
	c, regs := fakeController()

	c.Enable(Uart)

	if got := regs.enableIRQ2.Load(); got != 1<<25 {
		t.Errorf("expected Enable_IRQ_2 bit 25 set; got %#x", got)
	}
}

func TestIsPendingReadsBit25OfPending2(t *testing.T) {
	c, regs := fakeController()
	regs.irqPending2.Store(1 << 25)

	if !c.IsPending(Uart) {
		t.Error("expected IsPending(Uart) to be true")
	}
	if c.IsPending(Gpio3) {
		t.Error("expected IsPending(Gpio3) to be false")
	}
}

func TestBankSplit(t *testing.T) {
	specs := []struct {
		line  Line
		bank1 bool
		bit   uint32
	}{
		{Timer1, true, 1},
		{Timer3, true, 3},
		{Usb, true, 9},
		{Gpio0, false, 17},
		{Uart, false, 25},
	}

	for _, spec := range specs {
		bank1, bit := bankBit(spec.line)
		if bank1 != spec.bank1 || bit != spec.bit {
			t.Errorf("bankBit(%d) = (%t, %d); want (%t, %d)", spec.line, bank1, bit, spec.bank1, spec.bit)
		}
	}
}
