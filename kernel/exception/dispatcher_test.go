package exception

import (
	"testing"

	"github.com/achilleasa/rpi-sched/kernel/trap"
)

func TestHandleAdvancesELROnSynchronousException(t *testing.T) {
	prev := BreakpointHandler
	BreakpointHandler = func(imm uint16, tf *trap.Frame) {}
	defer func() { BreakpointHandler = prev }()

	esr := uint32(0b111000) << 26 // Brk class, imm 0
	tf := &trap.Frame{ELR: 0x1000}

	Handle(trap.Info{Kind: trap.Synchronous}, esr, tf)

	if tf.ELR != 0x1004 {
		t.Fatalf("expected ELR advanced by 4; got %#x", tf.ELR)
	}
}

func TestHandleRoutesBrkToBreakpointHandler(t *testing.T) {
	prev := BreakpointHandler
	var gotImm uint16
	var called bool
	BreakpointHandler = func(imm uint16, tf *trap.Frame) {
		called = true
		gotImm = imm
	}
	defer func() { BreakpointHandler = prev }()

	esr := uint32(0b111000)<<26 | 16
	tf := &trap.Frame{}

	Handle(trap.Info{Kind: trap.Synchronous}, esr, tf)

	if !called {
		t.Fatal("expected BreakpointHandler to be invoked for a Brk exception")
	}
	if gotImm != 16 {
		t.Fatalf("expected imm 16; got %d", gotImm)
	}
}

func TestHandleClearsIRQMaskOnFiq(t *testing.T) {
	tf := &trap.Frame{SPSR: 1 << 7}
	Handle(trap.Info{Kind: trap.Fiq}, 0, tf)

	if tf.SPSR&(1<<7) != 0 {
		t.Fatal("expected the I bit to be cleared before returning from the dispatcher")
	}
}
