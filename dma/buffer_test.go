package dma

import (
	"testing"
	"unsafe"
)

func TestBufferTransferCount(t *testing.T) {
	for _, n := range []int{1, 2, 10, MaxTransferUnits} {
		b := make(Buffer, n)
		count, ok := b.TransferCount()
		if !ok {
			t.Fatalf("len %d: no transfer count", n)
		}
		if count != uint32(n-1) {
			t.Errorf("len %d: count = %d, want %d", n, count, n-1)
		}
	}

	if _, ok := Buffer(nil).TransferCount(); ok {
		t.Error("empty buffer reported a transfer count")
	}
}

func TestBufferEndAddr(t *testing.T) {
	b := make(Buffer, 10)
	base := uintptr(unsafe.Pointer(&b[0]))
	if got := b.EndAddr(); got != base+9 {
		t.Errorf("EndAddr = %#x, want base+9 = %#x", got, base+9)
	}

	one := make(Buffer, 1)
	if got := one.EndAddr(); got != uintptr(unsafe.Pointer(&one[0])) {
		t.Errorf("EndAddr of 1-byte buffer = %#x, want its base", got)
	}
}

func TestBufferEmptyAndFull(t *testing.T) {
	if !Buffer(nil).IsEmpty() || !Buffer(nil).IsFull() {
		t.Error("nil buffer should be empty and full")
	}
	b := make(Buffer, 3)
	if b.IsEmpty() || b.IsFull() {
		t.Error("3-byte buffer should be neither empty nor full")
	}
}

func TestBufferValidity(t *testing.T) {
	if !make(Buffer, MaxTransferUnits).IsValid() {
		t.Errorf("buffer of %d units should be valid", MaxTransferUnits)
	}
	if make(Buffer, MaxTransferUnits+1).IsValid() {
		t.Errorf("buffer of %d units should not be valid", MaxTransferUnits+1)
	}
	if !Buffer(nil).IsValid() {
		t.Error("empty buffer should be valid; it takes the zero-length path")
	}
}

func TestBufferIncrement(t *testing.T) {
	if inc := make(Buffer, 4).Increment(); inc != Increment1X {
		t.Errorf("Increment = %d, want %d", inc, Increment1X)
	}
}
