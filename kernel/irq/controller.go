// Package irq drives the BCM2837 interrupt controller: enabling, disabling
// and polling the pending bit for a fixed set of numbered interrupt lines
// (spec.md §4.3, §6).
package irq

import "github.com/achilleasa/rpi-sched/kernel/mmio"

// intBase is IO_BASE + 0xB000 + 0x200 (spec.md §6).
const intBase = mmio.IOBase + 0xB000 + 0x200

// Line identifies one of the BCM2837's numbered interrupt sources.
type Line uint32

// Supported lines, numbered as the BCM2837 ARM peripherals manual assigns
// them (spec.md §6). Lines 32 and above live in the second pending/enable
// bank; lines below 32 live in the first.
const (
	Timer1 Line = 1
	Timer3 Line = 3
	Usb    Line = 9
	Gpio0  Line = 49
	Gpio1  Line = 50
	Gpio2  Line = 51
	Gpio3  Line = 52
	Uart   Line = 57
)

const bankSplit = 32

type registers struct {
	irqBasicPending mmio.Reg32
	irqPending1     mmio.Reg32
	irqPending2     mmio.Reg32
	fiqControl      mmio.Reg32
	enableIRQ1      mmio.Reg32
	enableIRQ2      mmio.Reg32
	enableBasicIRQs mmio.Reg32
	disableIRQ1     mmio.Reg32
	disableIRQ2     mmio.Reg32
	disableBasicIRQs mmio.Reg32
}

func newRegisters() *registers {
	return &registers{
		irqBasicPending:  mmio.At(intBase + 0x00),
		irqPending1:      mmio.At(intBase + 0x04),
		irqPending2:      mmio.At(intBase + 0x08),
		fiqControl:       mmio.At(intBase + 0x0C),
		enableIRQ1:       mmio.At(intBase + 0x10),
		enableIRQ2:       mmio.At(intBase + 0x14),
		enableBasicIRQs:  mmio.At(intBase + 0x18),
		disableIRQ1:      mmio.At(intBase + 0x1C),
		disableIRQ2:      mmio.At(intBase + 0x20),
		disableBasicIRQs: mmio.At(intBase + 0x24),
	}
}

// Controller is a handle to the interrupt controller registers.
type Controller struct {
	regs *registers
}

// New returns a handle to the BCM2837 interrupt controller.
func New() *Controller {
	return &Controller{regs: newRegisters()}
}

// bankBit splits a Line into its (enable/disable/pending register pair,
// bit-within-register) coordinates.
func bankBit(line Line) (bank1 bool, bit uint32) {
	if uint32(line) >= bankSplit {
		return false, uint32(line) - bankSplit
	}
	return true, uint32(line)
}

// Enable turns on delivery of the given interrupt line. The enable
// registers are write-1-to-act, so no read-modify-write is needed.
func (c *Controller) Enable(line Line) {
	inBank1, bit := bankBit(line)
	if inBank1 {
		c.regs.enableIRQ1.Store(1 << bit)
	} else {
		c.regs.enableIRQ2.Store(1 << bit)
	}
}

// Disable turns off delivery of the given interrupt line.
func (c *Controller) Disable(line Line) {
	inBank1, bit := bankBit(line)
	if inBank1 {
		c.regs.disableIRQ1.Store(1 << bit)
	} else {
		c.regs.disableIRQ2.Store(1 << bit)
	}
}

// IsPending reports whether the given interrupt line currently has an
// unserviced request latched.
func (c *Controller) IsPending(line Line) bool {
	inBank1, bit := bankBit(line)
	if inBank1 {
		return c.regs.irqPending1.Load()&(1<<bit) != 0
	}
	return c.regs.irqPending2.Load()&(1<<bit) != 0
}

var shared = New()

// Enable turns on line using the package's shared Controller handle.
func Enable(line Line) { shared.Enable(line) }

// Disable turns off line using the package's shared Controller handle.
func Disable(line Line) { shared.Disable(line) }

// IsPending polls line using the package's shared Controller handle.
func IsPending(line Line) bool { return shared.IsPending(line) }
