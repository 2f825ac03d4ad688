package usart

import (
	"unsafe"

	"github.com/tinygo-org/lpc8xx-dma/dma"
)

// Tx is the transmitter's side of a DMA transfer. It implements
// dma.Dest: a fixed register address that is never full while the
// peripheral is enabled, contributing no transfer count.
type Tx struct {
	u *USART
}

// IsValid reports whether the endpoint is backed by a peripheral.
func (t Tx) IsValid() bool {
	return t.u != nil
}

// IsFull returns false: the transmitter consumes bytes as the DMA
// request line paces them in.
func (t Tx) IsFull() bool {
	return false
}

// Increment returns dma.IncrementNone; TXDAT does not move.
func (t Tx) Increment() dma.AddressIncrement {
	return dma.IncrementNone
}

// TransferCount reports no count; the memory side paces the transfer.
func (t Tx) TransferCount() (uint32, bool) {
	return 0, false
}

// EndAddr returns the TXDAT register address.
func (t Tx) EndAddr() uintptr {
	return uintptr(unsafe.Pointer(&t.u.hw.TXDAT))
}

// Rx is the receiver's side of a DMA transfer. It implements
// dma.Source.
type Rx struct {
	u *USART
}

// IsValid reports whether the endpoint is backed by a peripheral.
func (r Rx) IsValid() bool {
	return r.u != nil
}

// IsEmpty returns false: the receiver supplies bytes as they arrive,
// paced by the DMA request line.
func (r Rx) IsEmpty() bool {
	return false
}

// Increment returns dma.IncrementNone; RXDAT does not move.
func (r Rx) Increment() dma.AddressIncrement {
	return dma.IncrementNone
}

// TransferCount reports no count; the memory side paces the transfer.
func (r Rx) TransferCount() (uint32, bool) {
	return 0, false
}

// EndAddr returns the RXDAT register address.
func (r Rx) EndAddr() uintptr {
	return uintptr(unsafe.Pointer(&r.u.hw.RXDAT))
}
