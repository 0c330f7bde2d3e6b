package alloc

import (
	"testing"

	"github.com/achilleasa/rpi-sched/kernel/errors"
)

func TestAllocIsMonotonic(t *testing.T) {
	b := New(0x1000, 0x2000)

	addr1, err := b.Alloc(Layout{Size: 16, Align: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr1 != 0x1000 {
		t.Fatalf("expected first allocation at region start; got %#x", addr1)
	}

	addr2, err := b.Alloc(Layout{Size: 16, Align: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr2 != addr1+16 {
		t.Fatalf("expected second allocation immediately after first; got %#x", addr2)
	}
}

func TestAllocHonoursAlignment(t *testing.T) {
	b := New(0x1001, 0x2000)

	addr, err := b.Alloc(Layout{Size: 16, Align: 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr%16 != 0 {
		t.Fatalf("expected 16-byte aligned address; got %#x", addr)
	}
}

func TestAllocExhaustion(t *testing.T) {
	b := New(0x1000, 0x1010)

	if _, err := b.Alloc(Layout{Size: 16, Align: 8}); err != nil {
		t.Fatalf("unexpected error on first allocation: %v", err)
	}

	if _, err := b.Alloc(Layout{Size: 1, Align: 1}); err != errors.ErrAllocExhausted {
		t.Fatalf("expected ErrAllocExhausted; got %v", err)
	}
}

func TestAllocZeroSizeUnsupported(t *testing.T) {
	b := New(0x1000, 0x2000)

	if _, err := b.Alloc(Layout{Size: 0, Align: 8}); err != errors.ErrAllocUnsupported {
		t.Fatalf("expected ErrAllocUnsupported; got %v", err)
	}
}
