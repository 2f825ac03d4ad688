package dma

import "unsafe"

// ChannelDescriptor is the record the DMA hardware reads to find one
// channel's transfer regions. The hardware works backwards from the end
// addresses, decrementing as units transfer, so both fields are
// addresses, not lengths.
//
// A descriptor is only written by its owning channel, immediately
// before a transfer is armed. Stale values between transfers are
// harmless; they are overwritten before every start.
type ChannelDescriptor struct {
	SourceEnd uint32
	DestEnd   uint32
}

// DescriptorTable is the channel descriptor table, one entry per
// channel in channel index order. The hardware holds its physical base
// address (programmed into SRAMBASE when the controller is enabled), so
// the table must never move for the lifetime of the process.
type DescriptorTable [NumChannels]ChannelDescriptor

// SRAMBASE only stores address bits 31:9, so the table must sit on a
// 512-byte boundary.
//
//go:align 512
var descriptorTable DescriptorTable

// BaseAddr returns the address the hardware must be given as its
// descriptor table base.
func (t *DescriptorTable) BaseAddr() uintptr {
	return uintptr(unsafe.Pointer(t))
}
