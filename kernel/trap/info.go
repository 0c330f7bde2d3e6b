package trap

// Kind identifies the category of exception the vector trapped into.
type Kind uint16

// Kind values, encoded as the vector passes them (spec.md §6).
const (
	Synchronous Kind = 0
	Irq         Kind = 1
	Fiq         Kind = 2
	SError      Kind = 3
)

// Source identifies which exception level and stack the exception was
// taken from.
type Source uint16

// Source values, encoded as the vector passes them (spec.md §6).
const (
	CurrentSpEl0   Source = 0
	CurrentSpElx   Source = 1
	LowerAArch64   Source = 2
	LowerAArch32   Source = 3
)

// Info describes the source and kind of an exception, as decoded by the
// vector before it calls into the dispatcher.
type Info struct {
	Source Source
	Kind   Kind
}
