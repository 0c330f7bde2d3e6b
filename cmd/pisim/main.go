// Command pisim is a hosted rehearsal harness for the scheduler core: it
// drives a real process.Scheduler with no MMIO and no AArch64 underneath it,
// so the run queue, round-robin ordering and wait-predicate resumption can
// be watched interactively on a developer's machine before anything touches
// a Raspberry Pi. It puts the terminal in raw mode and forwards keystrokes
// to a simulated shell process one byte at a time, the same way a hardware
// UART would deliver them to a real one.
//
// It builds only for GOARCH=arm64: kernel/process imports kernel/cpu, whose
// files are all arm64-only.
package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/achilleasa/rpi-sched/kernel/mem/alloc"
	"github.com/achilleasa/rpi-sched/kernel/process"
	"github.com/achilleasa/rpi-sched/kernel/trap"
)

// keyPress latches bytes read from stdin by the background reader so the
// shell process's wait predicate can poll it without blocking the
// scheduler loop, the same poll-don't-block shape syscall.sleep uses on
// real hardware.
var keyPress = make(chan byte, 16)

func readKeys(f *os.File) {
	buf := make([]byte, 1)
	for {
		n, err := f.Read(buf)
		if err != nil || n == 0 {
			return
		}
		keyPress <- buf[0]
	}
}

// waitForKey builds a wait predicate that fires on the next available
// keystroke, writing it into the owning process's x0 the way a real syscall
// predicate writes its result.
func waitForKey() process.Predicate {
	return func(p *process.Process) bool {
		select {
		case b := <-keyPress:
			p.Frame.X0 = uint64(b)
			return true
		default:
			return false
		}
	}
}

func main() {
	fd := int(os.Stdin.Fd())
	raw := term.IsTerminal(fd)

	var oldState *term.State
	if raw {
		state, err := term.GetState(fd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pisim: reading terminal state:", err)
			raw = false
		} else {
			oldState = state
			if _, err := term.MakeRaw(fd); err != nil {
				fmt.Fprintln(os.Stderr, "pisim: entering raw mode:", err)
				raw = false
			}
		}
	}
	if raw {
		defer term.Restore(fd, oldState)
		go readKeys(os.Stdin)
	}

	// Back the global allocator with a fake region, as the process package's
	// tests do: the stack addresses it hands out are never dereferenced here.
	alloc.Init(0x10000, 0x10000000)

	sched := &process.Scheduler{}

	shell, err := process.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pisim:", err)
		os.Exit(1)
	}
	shellID := sched.Add(shell)

	ticker, err := process.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pisim:", err)
		os.Exit(1)
	}
	tickerID := sched.Add(ticker)

	fmt.Printf("pisim: seeded shell=%d ticker=%d; press q to quit\r\n", shellID, tickerID)

	tf := &trap.Frame{TPIDR: shellID}
	current := shellID

	for {
		newState := process.State{Kind: process.Ready}
		if current == shellID {
			newState = process.State{Kind: process.Waiting, Poll: waitForKey()}
		}

		id, ok := sched.Switch(newState, tf)
		if !ok {
			fmt.Println("pisim: no runnable process")
			return
		}
		current = id

		switch id {
		case shellID:
			if tf.X0 == 'q' {
				fmt.Print("\r\npisim: quit\r\n")
				return
			}
			fmt.Printf("\r\nshell observed keypress %q\r\n", rune(tf.X0))
		case tickerID:
			fmt.Print(".")
		}

		time.Sleep(200 * time.Millisecond)
	}
}
