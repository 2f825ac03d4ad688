// Package dma provides access to the DMA controller of the NXP LPC82x
// and LPC845 microcontrollers. It moves bytes between memory and
// peripheral data registers on one of the controller's channels without
// CPU byte copies.
//
// Usage follows the hardware's lifecycle: enable the controller (which
// requires the syscon clock gate and publishes the descriptor table to
// the hardware), enable a channel against the returned Handle, then
// start single-shot, software-triggered transfers and poll them for
// completion. Memory-to-memory transfers, descriptor chaining and
// completion interrupts are not supported.
package dma

import "github.com/tinygo-org/lpc8xx-dma/syscon"

// DMA0 is the DMA controller peripheral.
var DMA0 = newDMA(dma0, &descriptorTable)

// DMA represents the DMA controller.
type DMA struct {
	hw    *registers
	table *DescriptorTable

	handle   Handle
	enabled  bool
	channels *Channels

	// Bitmask of enabled channels. A channel stays enabled for the
	// remainder of the program; there is no way back to the disabled
	// state.
	enabledMask uint32

	// Bitmask of channels with a transfer in flight: set when a
	// transfer starts, cleared when its Transfer is reclaimed.
	busyMask uint32

	nc noCopy
}

func newDMA(regs *registers, table *DescriptorTable) *DMA {
	return &DMA{hw: regs, table: table}
}

// Handle is proof that the DMA controller's clock is running and its
// reset released. Enabling a channel requires one.
type Handle struct {
	dma *DMA
}

// Enable switches the DMA controller on: it gates the controller's
// clock and reset through syscon, publishes the descriptor table's base
// address to the hardware and sets the controller enable bit. The
// returned Handle is the capability channels are enabled against.
//
// Enable is idempotent; calling it again returns the same Handle.
func (d *DMA) Enable(sys *syscon.Handle) *Handle {
	if d.enabled {
		return &d.handle
	}
	sys.EnableClock(syscon.DMA)
	sys.DeassertReset(syscon.DMA)

	// The hardware reads channel descriptors relative to SRAMBASE from
	// the moment the controller is enabled. See user manual, section
	// 12.6.3.
	d.hw.SRAMBASE.Set(uint32(d.table.BaseAddr()))
	d.hw.CTRL.Set(ctrlEnable)

	d.handle = Handle{dma: d}
	d.enabled = true
	return &d.handle
}

// Channels returns the channel collection, carving the descriptor table
// into per-channel slots on first use.
func (d *DMA) Channels() *Channels {
	if d.channels == nil {
		d.channels = newChannels(d, d.table)
	}
	return d.channels
}

// noCopy may be embedded into structs which must not be copied
// after first use.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) UnLock() {}
