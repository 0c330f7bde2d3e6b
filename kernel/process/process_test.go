package process

import "testing"

func TestNewProcessIsReady(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.State.Kind != Ready {
		t.Fatalf("expected new process to be Ready; got %v", p.State.Kind)
	}
	if !p.IsReady() {
		t.Fatal("expected IsReady() to be true for a Ready process")
	}
}

func TestNewProcessStackTopAligned(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top := p.Stack.Top(); top%16 != 0 {
		t.Fatalf("expected 16-byte aligned stack top; got %#x", top)
	}
}

func TestNewProcessDefaultsStatusToSentinel(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := *p.Frame.X7(); got != unassignedStatus {
		t.Fatalf("expected x7 to default to the unassigned-status sentinel; got %#x", got)
	}
}

func TestIsReadyWaitingPredicate(t *testing.T) {
	fired := false
	p := &Process{
		State: State{
			Kind: Waiting,
			Poll: func(p *Process) bool { return fired },
		},
	}

	if p.IsReady() {
		t.Fatal("expected process not to be ready before the predicate fires")
	}
	if p.State.Kind != Waiting {
		t.Fatalf("expected state to remain Waiting; got %v", p.State.Kind)
	}

	fired = true
	if !p.IsReady() {
		t.Fatal("expected process to be ready once the predicate fires")
	}
	if p.State.Kind != Ready {
		t.Fatalf("expected state to switch to Ready; got %v", p.State.Kind)
	}
}

func TestIsReadyRunningIsNotReady(t *testing.T) {
	p := &Process{State: State{Kind: Running}}
	if p.IsReady() {
		t.Fatal("expected a Running process not to be ready")
	}
}
