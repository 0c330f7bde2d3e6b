package process

// Kind tags which variant a State currently holds.
type Kind uint8

// Kind values (spec.md §3). Zombie is reserved: this core never destroys a
// process, so nothing ever assigns it.
const (
	Ready Kind = iota
	Running
	Waiting
	Zombie
)

// Predicate is invoked with exclusive access to the waiting process and
// reports whether the awaited event has occurred. It may write a return
// value and status into the process's trap frame before returning true; it
// must otherwise be side-effect-free and safe to call arbitrarily often.
type Predicate func(p *Process) bool

// State is a tagged union over a process's scheduling state: Kind selects
// which variant is live, and Poll is meaningful only when Kind is Waiting.
type State struct {
	Kind Kind
	Poll Predicate
}
