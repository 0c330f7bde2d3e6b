package kernel

import (
	"bytes"
	"testing"

	"github.com/achilleasa/rpi-sched/kernel/cpu"
	"github.com/achilleasa/rpi-sched/kernel/hal"
)

func TestPanic(t *testing.T) {
	defer func() {
		cpuHaltFn = cpu.Halt
	}()

	var cpuHaltCalled bool
	cpuHaltFn = func() {
		cpuHaltCalled = true
	}

	t.Run("with error", func(t *testing.T) {
		cpuHaltCalled = false
		buf := mockTerminal()
		err := &Error{Module: "test", Message: "panic test"}

		Panic(err)

		exp := "\n-----------------------------------\n[test] unrecoverable error: panic test\n*** kernel panic: system halted ***\n-----------------------------------\n"

		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})

	t.Run("without error", func(t *testing.T) {
		cpuHaltCalled = false
		buf := mockTerminal()

		Panic(nil)

		exp := "\n-----------------------------------\n*** kernel panic: system halted ***\n-----------------------------------\n"

		if got := buf.String(); got != exp {
			t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
		}

		if !cpuHaltCalled {
			t.Fatal("expected cpu.Halt() to be called by Panic")
		}
	})
}

// mockTerminal attaches hal.ActiveTerminal to an in-memory buffer so
// early.Printf output (and therefore Panic's output) can be inspected.
func mockTerminal() *bytes.Buffer {
	var buf bytes.Buffer
	hal.InitTerminal(func(b byte) {
		buf.WriteByte(b)
	})
	return &buf
}
