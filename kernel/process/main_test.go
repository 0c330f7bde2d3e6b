package process

import (
	"testing"

	"github.com/achilleasa/rpi-sched/kernel/mem/alloc"
)

// TestMain backs the global allocator with a large fake region before any
// test runs. The addresses it hands out are never dereferenced from Go code
// (they only ever become a trap frame's SP, read by the assembly vector on
// real hardware), so a span with no real backing memory is fine here.
func TestMain(m *testing.M) {
	alloc.Init(0x10000, 0x10000000)
	m.Run()
}
