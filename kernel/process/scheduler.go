package process

import (
	"github.com/achilleasa/rpi-sched/kernel"
	"github.com/achilleasa/rpi-sched/kernel/cpu"
	"github.com/achilleasa/rpi-sched/kernel/errors"
	"github.com/achilleasa/rpi-sched/kernel/irq"
	"github.com/achilleasa/rpi-sched/kernel/sync"
	"github.com/achilleasa/rpi-sched/kernel/timer"
	"github.com/achilleasa/rpi-sched/kernel/trap"
)

var errUninitialized = &kernel.Error{Module: "scheduler", Message: errors.ErrSchedulerUninitialized.Error()}

// wfiFn is mocked by tests so that the "spin down when nothing is ready"
// branch of switchTo doesn't actually park the host test process.
var wfiFn = cpu.WFI

// Global is the process-wide scheduler singleton: a Scheduler guarded by a
// spinlock, uninitialized until Start runs (spec.md §9, "process-wide state
// with explicit initialize() that must be called before any accessor").
// Every caller from exception context must acquire and release within the
// handler; holding the lock across an exception return is forbidden.
type Global struct {
	lock sync.Spinlock
	sched *Scheduler
}

// GlobalScheduler is the machine-wide scheduler. Start must run before any
// other method is called.
var GlobalScheduler Global

// Add enqueues process and returns its assigned ID. Calling Add before
// Start has run is a fatal error: the scheduler has no queue to add to.
func (g *Global) Add(p *Process) ID {
	g.lock.Acquire()
	defer g.lock.Release()

	if g.sched == nil {
		kernel.Panic(errUninitialized)
	}
	return g.sched.add(p)
}

// Switch retires the current process into newState, selects the next ready
// process, and loads its trap frame into tf. See Scheduler.switchTo for the
// full algorithm. Calling Switch before Start has run is a fatal error.
func (g *Global) Switch(newState State, tf *trap.Frame) (ID, bool) {
	g.lock.Acquire()
	defer g.lock.Release()

	if g.sched == nil {
		kernel.Panic(errUninitialized)
	}
	return g.sched.switchTo(newState, tf)
}

// bootstrapFn is a package variable so tests can replace it; no test in
// this package does so. On real hardware it is the assembly
// trampoline of spec.md §4.8.3 step 5: point SP at tf, call
// context_restore, reset the kernel stack pointer to _start, zero x0/x30,
// and execute an exception return into the first process. It never
// returns.
var bootstrapFn = bootstrap

// Start brings up the scheduler and does not return under normal
// conditions: it hands off to bootstrapFn, the architecture-specific
// trampoline that performs the exception return into the first seed
// process (spec.md §4.8.3). entryPoints gives the ELR for each seed
// process, in the order they are added; the first one becomes the
// scheduler's initial current process and the one bootstrapFn resumes.
func Start(tick uint32, entryPoints ...uintptr) error {
	sched := &Scheduler{}

	var first *trap.Frame
	for i, entry := range entryPoints {
		p, err := New()
		if err != nil {
			return err
		}

		p.Frame.ELR = uint64(entry)
		p.Frame.SP = p.Stack.Top()
		if i == 0 {
			p.Frame.ClearDAIF()
		}

		GlobalScheduler.lock.Acquire()
		sched.add(p)
		GlobalScheduler.lock.Release()

		if i == 0 {
			first = p.Frame
		}
	}

	GlobalScheduler.lock.Acquire()
	GlobalScheduler.sched = sched
	GlobalScheduler.lock.Release()

	irq.Enable(irq.Timer1)
	timer.TickIn(tick)

	bootstrapFn(first)
	return nil
}

// Scheduler holds the FIFO run queue, the currently running process's ID,
// and the last assigned ID (spec.md §4.8). current and lastID are valid
// only when their companion hasX flag is true, modelling Option<Id> without
// pointer aliasing into a Process's own fields.
type Scheduler struct {
	queue      []*Process
	current    ID
	hasCurrent bool
	lastID     ID
	hasLastID  bool
}

// Add enqueues process directly on this Scheduler instance, bypassing the
// Global wrapper's spinlock and uninitialized check. cmd/pisim uses this to
// drive a standalone Scheduler on a host with no interrupts and no shared
// state to protect.
func (s *Scheduler) Add(p *Process) ID {
	return s.add(p)
}

// Switch performs a context switch directly on this Scheduler instance. See
// switchTo for the algorithm.
func (s *Scheduler) Switch(newState State, tf *trap.Frame) (ID, bool) {
	return s.switchTo(newState, tf)
}

// add implements spec.md §4.8.1: assign the next monotonic ID, record it
// both as the process's TPIDR and as the scheduler's last assigned ID, and
// enqueue at the tail.
func (s *Scheduler) add(p *Process) ID {
	next := ID(0)
	if s.hasLastID {
		next = s.lastID + 1
	}
	s.lastID = next
	s.hasLastID = true

	p.Frame.TPIDR = next
	s.queue = append(s.queue, p)

	return next
}

// popFront removes and returns the head of the queue, or nil if empty.
func (s *Scheduler) popFront() *Process {
	if len(s.queue) == 0 {
		return nil
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	return p
}

// pushFront inserts p at the head of the queue.
func (s *Scheduler) pushFront(p *Process) {
	s.queue = append([]*Process{p}, s.queue...)
}

// pushBack inserts p at the tail of the queue.
func (s *Scheduler) pushBack(p *Process) {
	s.queue = append(s.queue, p)
}

// switchTo implements spec.md §4.8.2. It retires the current process into
// newState, saves the live trap frame tf into it, then scans the queue for
// the next ready process, loading its trap frame into tf and leaving it at
// the front of the queue. If the only process in the queue is not ready and
// it is the one that was current, the CPU is parked with wfi until the next
// interrupt rather than spinning.
func (s *Scheduler) switchTo(newState State, tf *trap.Frame) (ID, bool) {
	cur := s.popFront()
	if cur == nil {
		return 0, false
	}

	s.current = cur.Frame.TPIDR
	s.hasCurrent = true
	cur.State = newState
	*cur.Frame = *tf
	s.pushBack(cur)

	for {
		p := s.popFront()
		if p == nil {
			return 0, false
		}

		if p.IsReady() {
			s.current = p.Frame.TPIDR
			s.hasCurrent = true
			*tf = *p.Frame
			p.State = State{Kind: Running}
			s.pushFront(p)
			return p.Frame.TPIDR, true
		}

		if s.hasCurrent && s.current == p.Frame.TPIDR && len(s.queue) == 0 {
			wfiFn()
		}
		s.pushBack(p)
	}
}
