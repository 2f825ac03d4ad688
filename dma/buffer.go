package dma

import "unsafe"

// Buffer is a fixed memory region serving as a DMA endpoint. It
// implements both Source and Dest; which role it plays follows from the
// StartTransfer argument position.
//
// The region must not move while a transfer using it may be active.
// Package-level and heap memory qualify; memory whose lifetime ends
// before the transfer is reclaimed does not.
type Buffer []byte

// IsValid reports whether the buffer fits a single DMA operation.
func (b Buffer) IsValid() bool {
	return len(b) <= MaxTransferUnits
}

// IsEmpty reports whether the buffer has no bytes to supply.
func (b Buffer) IsEmpty() bool {
	return len(b) == 0
}

// IsFull reports whether the buffer has no room to receive into.
func (b Buffer) IsFull() bool {
	return len(b) == 0
}

// Increment returns the memory region's address increment mode: one
// byte per transfer unit.
func (b Buffer) Increment() AddressIncrement {
	return Increment1X
}

// TransferCount returns the buffer's length minus one. A memory region
// always paces the transfer; an empty buffer reports no count, but
// StartTransfer's fast path returns before asking it for one.
func (b Buffer) TransferCount() (uint32, bool) {
	if len(b) == 0 {
		return 0, false
	}
	return uint32(len(b) - 1), true
}

// EndAddr returns the address of the buffer's last byte, which is what
// the descriptor wants: the hardware works backwards from the end
// address. Must only be called on a non-empty buffer; in bounds, since
// StartTransfer never reads the end address of an empty region.
func (b Buffer) EndAddr() uintptr {
	return uintptr(unsafe.Pointer(&b[len(b)-1]))
}
