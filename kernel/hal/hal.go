package hal

import "github.com/achilleasa/rpi-sched/kernel/driver/console"

// ActiveTerminal is the sink that kfmt/early.Printf and kernel.Panic write
// diagnostics to. It starts attached to nothing (writes are discarded) until
// InitTerminal or a caller-supplied Attach wires it to a real sink.
var ActiveTerminal = &console.UART{}

// InitTerminal wires ActiveTerminal to fn, which is invoked once per output
// byte. Neither kmain nor cmd/pisim calls it, so on those paths
// ActiveTerminal discards its output; the kernel package's tests call it to
// capture output in a buffer.
func InitTerminal(fn func(b byte)) {
	ActiveTerminal.Attach(fn)
}
