// Package process implements the scheduler's unit of work: a process's
// owned trap frame and stack, its scheduling state, and the round-robin
// scheduler that moves processes between Ready, Running and Waiting.
package process

import "github.com/achilleasa/rpi-sched/kernel/trap"

// ID identifies a process within a single scheduler instance. IDs are
// assigned monotonically starting at 0 and wrap on overflow.
type ID = uint64

// unassignedStatus is written into every new process's x7 slot before it
// ever runs. A syscall dispatcher that does not recognise its syscall
// number leaves x7 untouched, so the user-side trampoline can tell "ran and
// succeeded" (x7 == 0) apart from "never handled" (x7 == unassignedStatus).
const unassignedStatus = ^uint64(0)

// Process is the complete saved state of one schedulable unit of work: an
// owned trap frame (the CPU context when not running), an owned stack, and
// a scheduling State.
type Process struct {
	Frame *trap.Frame
	Stack *Stack
	State State
}

// New allocates a fresh stack and a zeroed trap frame and returns a process
// in the Ready state. No ID is assigned; the scheduler assigns one when the
// process is added to the run queue.
func New() (*Process, error) {
	stack, err := NewStack()
	if err != nil {
		return nil, err
	}

	frame := &trap.Frame{}
	*frame.X7() = unassignedStatus

	return &Process{
		Frame: frame,
		Stack: stack,
		State: State{Kind: Ready},
	}, nil
}

// IsReady reports whether this process can be scheduled right now (spec.md
// §4.7). A Ready process is always ready. A Waiting process is ready only
// if its predicate, invoked with exclusive access to the process, reports
// that the awaited event has occurred; on success the state is switched to
// Ready as a side effect. Any other state is never ready.
func (p *Process) IsReady() bool {
	switch p.State.Kind {
	case Ready:
		return true
	case Waiting:
		poll := p.State.Poll
		p.State.Poll = nil
		if poll(p) {
			p.State = State{Kind: Ready}
			return true
		}
		p.State.Poll = poll
		return false
	default:
		return false
	}
}
