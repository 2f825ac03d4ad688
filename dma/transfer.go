package dma

import (
	"runtime"

	"github.com/tinygo-org/lpc8xx-dma/internal/hw"
)

// MaxTransferUnits is the largest number of transfer units a single DMA
// operation can move. XFERCFG's count field holds the unit count minus
// one in 10 bits.
const MaxTransferUnits = 1024

const (
	badSource        = "dma: invalid source endpoint"
	badDest          = "dma: invalid destination endpoint"
	badTransferShape = "dma: unsupported transfer: exactly one endpoint must supply a transfer count"
	badReclaim       = "dma: transfer already reclaimed"
	badChannelBusy   = "dma: transfer already in flight on channel"
)

// AddressIncrement selects how the hardware advances an endpoint's
// address after each transfer unit. The values are the SRCINC/DSTINC
// field encodings. See user manual, section 12.6.18.
type AddressIncrement uint32

const (
	// IncrementNone leaves the address fixed, as for a peripheral data
	// register.
	IncrementNone AddressIncrement = 0
	// Increment1X advances by one transfer width per unit.
	Increment1X AddressIncrement = 1
	// Increment2X advances by twice the transfer width per unit.
	Increment2X AddressIncrement = 2
	// Increment4X advances by four times the transfer width per unit.
	Increment4X AddressIncrement = 3
)

// Source supplies the bytes of a DMA transfer. It is implemented by
// memory regions (Buffer) and by peripheral receive registers
// (usart.Rx).
type Source interface {
	// IsValid reports whether the endpoint can take part in a single
	// DMA operation at all. StartTransfer panics on an invalid
	// endpoint.
	IsValid() bool
	// IsEmpty reports whether the endpoint has nothing left to supply.
	IsEmpty() bool
	// Increment returns the address increment mode programmed into
	// SRCINC.
	Increment() AddressIncrement
	// TransferCount returns the number of transfer units minus one,
	// if this endpoint paces the transfer. Exactly one endpoint of a
	// transfer reports a count; the other is the open-ended
	// peripheral side.
	TransferCount() (uint32, bool)
	// EndAddr returns the address programmed into the channel
	// descriptor: the last in-bounds address of an incrementing
	// region, or the fixed register address.
	EndAddr() uintptr
}

// Dest receives the bytes of a DMA transfer.
type Dest interface {
	IsValid() bool
	// IsFull reports whether the endpoint cannot receive anything.
	IsFull() bool
	Increment() AddressIncrement
	TransferCount() (uint32, bool)
	EndAddr() uintptr
}

// StartTransfer arms and triggers a single-shot transfer from source to
// dest on this channel and returns immediately. The returned Transfer
// owns the channel and both endpoints until the operation is reclaimed.
//
// The transfer unit is one byte. Exactly one endpoint must supply a
// transfer count, and endpoints must fit a single DMA operation (at
// most MaxTransferUnits units); violations are caller bugs and panic
// before any register is written, since a misprogrammed transfer can
// corrupt unrelated memory. An already empty source or full destination
// skips the hardware entirely and returns a completed Transfer.
//
// The channel belongs to the returned Transfer until it is reclaimed
// with Wait or Abort; starting another transfer on a retained copy of
// the channel before then panics.
func (ch EnabledChannel) StartTransfer(source Source, dest Dest) *Transfer {
	if !source.IsValid() {
		panic(badSource)
	}
	if !dest.IsValid() {
		panic(badDest)
	}

	// The returned Transfer owns the channel until it is reclaimed;
	// starting again before that would rewrite the live descriptor
	// under the hardware.
	flag := ch.channel.Flag()
	d := ch.channel.dma
	if d.busyMask&flag != 0 {
		panic(badChannelBusy)
	}
	d.busyMask |= flag

	// No prior write to the buffers may be reordered past the point
	// where the hardware learns their addresses.
	hw.Fence()

	// The transfer count is the endpoint's length minus 1. Returning
	// early keeps that from underflowing on an empty region.
	if source.IsEmpty() || dest.IsFull() {
		return &Transfer{channel: ch, source: source, dest: dest}
	}

	// Memory-to-memory is not supported: exactly one endpoint paces
	// the transfer and supplies the unit count.
	srcCount, srcOK := source.TransferCount()
	dstCount, dstOK := dest.TransferCount()
	var count uint32
	switch {
	case srcOK && !dstOK:
		count = srcCount
	case dstOK && !srcOK:
		count = dstCount
	default:
		panic(badTransferShape)
	}

	regs := ch.regs()

	// Channel configuration: peripheral requests pace the transfer, no
	// hardware trigger, priority 0. See user manual, section 12.6.16.
	regs.CFG.Set(cfgPeriphReqEn)

	// Transfer configuration in a single write: the hardware latches
	// CFGVALID together with the other fields, so the register must
	// not be built up piecemeal. Width is fixed at 8 bit; RELOAD, the
	// trigger bits and both interrupt bits stay clear (single-shot,
	// polled). See user manual, section 12.6.18.
	regs.XFERCFG.Set(xfercfgCfgValid |
		uint32(source.Increment())<<xfercfgSrcIncPos |
		uint32(dest.Increment())<<xfercfgDstIncPos |
		count<<xfercfgCountPos)

	// Channel descriptor. See user manual, sections 12.5.2 and 12.5.3.
	ch.channel.descriptor.SourceEnd = uint32(source.EndAddr())
	ch.channel.descriptor.DestEnd = uint32(dest.EndAddr())

	// Enable, then trigger, strictly after configuration: triggering a
	// half-configured channel is undefined hardware behaviour.
	// ENABLESET0 and SETTRIG0 are write-one-to-set; only this
	// channel's bit is written. See user manual, sections 12.6.4 and
	// 12.6.15.
	d.hw.ENABLESET0.SetBits(flag)
	d.hw.SETTRIG0.Set(flag)

	return &Transfer{channel: ch, source: source, dest: dest}
}

// Transfer is a single-shot DMA operation that may still be in flight.
// It owns the channel and both endpoints, which keeps the buffers
// referenced while the hardware may access them.
//
// A Transfer must not be abandoned before completion: reclaim the
// channel with Wait, or stop the operation with Abort. Dropping the
// last reference to an unfinished Transfer leaves the hardware running
// against memory the program no longer tracks.
type Transfer struct {
	channel   EnabledChannel
	source    Source
	dest      Dest
	reclaimed bool
}

// Finished reports whether the hardware has cleared this channel's bit
// in the ACTIVE0 register. It is a pure register read with no side
// effects. A transfer whose fast path never touched the hardware is
// finished from the start.
func (t *Transfer) Finished() bool {
	return !t.channel.channel.dma.hw.ACTIVE0.HasBits(t.channel.channel.Flag())
}

// Wait polls until the hardware reports the transfer complete, then
// hands back the channel and both endpoints. Reclaiming early is not
// possible: Wait defers until the ACTIVE0 bit clears.
//
// Panics if the transfer was already reclaimed by Wait or Abort.
func (t *Transfer) Wait() (EnabledChannel, Source, Dest) {
	if t.reclaimed {
		panic(badReclaim)
	}
	for !t.Finished() {
		gosched()
	}
	t.channel.channel.dma.busyMask &^= t.channel.channel.Flag()
	t.reclaimed = true
	return t.channel, t.source, t.dest
}

// Abort stops an in-flight transfer and hands back the channel and
// endpoints once the hardware has drained. The channel's enable bit is
// cleared first, then the abort waits for the channel to go un-busy
// before requesting the abort proper. See user manual, section 12.5.5.
//
// Panics if the transfer was already reclaimed.
func (t *Transfer) Abort() (EnabledChannel, Source, Dest) {
	if t.reclaimed {
		panic(badReclaim)
	}
	flag := t.channel.channel.Flag()
	ctl := t.channel.channel.dma.hw

	ctl.ENABLECLR0.Set(flag)
	for ctl.BUSY0.HasBits(flag) {
		gosched()
	}
	ctl.ABORT0.Set(flag)

	t.channel.channel.dma.busyMask &^= flag
	t.reclaimed = true
	return t.channel, t.source, t.dest
}

func gosched() {
	runtime.Gosched()
}
