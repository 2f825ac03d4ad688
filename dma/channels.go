package dma

const (
	badChannelIndex    = "dma: invalid channel index"
	badChannelEnabled  = "dma: channel already enabled"
	badHandle          = "dma: handle does not belong to this controller"
	badDescriptorTable = "dma: descriptor table exhausted"
)

// Channels is the fixed collection of the chip variant's DMA channels,
// built once from the descriptor table.
type Channels struct {
	chans [NumChannels]Channel
}

// The channels are paired with descriptor slots in ascending index
// order; slot assignment never changes afterwards.
func newChannels(d *DMA, table *DescriptorTable) *Channels {
	cs := new(Channels)
	slots := table[:]
	for i := range cs.chans {
		if len(slots) == 0 {
			panic(badDescriptorTable)
		}
		cs.chans[i] = Channel{
			dma:        d,
			index:      uint8(i),
			descriptor: &slots[0],
		}
		slots = slots[1:]
	}
	return cs
}

// Channel returns the channel at index, in its initial disabled state.
func (cs *Channels) Channel(index uint8) Channel {
	if int(index) >= NumChannels {
		panic(badChannelIndex)
	}
	return cs.chans[index]
}

// Channel identifies one hardware DMA channel in the disabled state. A
// disabled channel cannot start transfers; Enable it first.
type Channel struct {
	dma        *DMA
	index      uint8
	descriptor *ChannelDescriptor
}

// Index returns the channel's index, 0 for channel 0 and so on.
func (ch Channel) Index() uint8 {
	return ch.index
}

// Flag returns the channel's bit in the shared per-channel-bit
// registers (ENABLESET0, SETTRIG0, ACTIVE0 and friends).
func (ch Channel) Flag() uint32 {
	return 1 << ch.index
}

// Enable claims the channel and returns it in the enabled state. The
// handle is proof that the controller's clock and reset preconditions
// hold; it must come from this channel's controller.
//
// A channel can be enabled once. There is no transition back to the
// disabled state, and enabling an already enabled channel panics.
func (ch Channel) Enable(handle *Handle) EnabledChannel {
	if handle == nil || handle.dma != ch.dma {
		panic(badHandle)
	}
	if ch.dma.enabledMask&ch.Flag() != 0 {
		panic(badChannelEnabled)
	}
	ch.dma.enabledMask |= ch.Flag()
	return EnabledChannel{channel: ch}
}

// EnabledChannel is a claimed DMA channel ready to start transfers.
type EnabledChannel struct {
	channel Channel
}

// Index returns the channel's index.
func (ch EnabledChannel) Index() uint8 {
	return ch.channel.index
}

// regs returns the channel's dedicated register block. The three shared
// control registers are accessed through the controller; this channel
// only ever touches its own bit in them.
func (ch EnabledChannel) regs() *channelRegisters {
	return &ch.channel.dma.hw.CH[ch.channel.index]
}
