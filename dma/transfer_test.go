package dma

import (
	"testing"
	"unsafe"
)

// regEndpoint stands in for a peripheral data register: fixed address,
// no transfer count, never exhausted. It implements both Source and
// Dest.
type regEndpoint struct {
	addr *uint32
}

func (e regEndpoint) IsValid() bool                 { return e.addr != nil }
func (e regEndpoint) IsEmpty() bool                 { return false }
func (e regEndpoint) IsFull() bool                  { return false }
func (e regEndpoint) Increment() AddressIncrement   { return IncrementNone }
func (e regEndpoint) TransferCount() (uint32, bool) { return 0, false }
func (e regEndpoint) EndAddr() uintptr              { return uintptr(unsafe.Pointer(e.addr)) }

func xfercfgCount(v uint32) uint32 {
	return (v & xfercfgCountMsk) >> xfercfgCountPos
}

func TestStartTransferToPeripheral(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(2).Enable(h)

	buf := make(Buffer, 10)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(buf, periph)

	desc := &d.table[2]
	if want := uint32(uintptr(unsafe.Pointer(&buf[9]))); desc.SourceEnd != want {
		t.Errorf("descriptor source end = %#x, want base+9 = %#x", desc.SourceEnd, want)
	}
	if want := uint32(uintptr(unsafe.Pointer(periph.addr))); desc.DestEnd != want {
		t.Errorf("descriptor dest end = %#x, want register address %#x", desc.DestEnd, want)
	}

	cfg := d.hw.CH[2].CFG.Get()
	if cfg != cfgPeriphReqEn {
		t.Errorf("CFG = %#x, want peripheral requests enabled only", cfg)
	}

	xfercfg := d.hw.CH[2].XFERCFG.Get()
	if xfercfg&xfercfgCfgValid == 0 {
		t.Error("XFERCFG config-valid bit not set")
	}
	if got := xfercfgCount(xfercfg); got != 9 {
		t.Errorf("XFERCFG count = %d, want 9", got)
	}
	if got := (xfercfg >> xfercfgSrcIncPos) & 0x3; got != uint32(Increment1X) {
		t.Errorf("SRCINC = %d, want %d", got, Increment1X)
	}
	if got := (xfercfg >> xfercfgDstIncPos) & 0x3; got != uint32(IncrementNone) {
		t.Errorf("DSTINC = %d, want %d", got, IncrementNone)
	}
	if xfercfg&(xfercfgReload|xfercfgSWTrig|xfercfgClrTrig|xfercfgSetIntA|xfercfgSetIntB) != 0 {
		t.Errorf("XFERCFG = %#x: reload, trigger or interrupt bits set", xfercfg)
	}
	if got := (xfercfg >> xfercfgWidthPos) & 0x3; got != 0 {
		t.Errorf("width field = %d, want 0 (8 bit)", got)
	}

	if !d.hw.ENABLESET0.HasBits(1 << 2) {
		t.Error("channel enable bit not set")
	}
	if got := d.hw.SETTRIG0.Get(); got != 1<<2 {
		t.Errorf("SETTRIG0 = %#x, want only channel 2's bit", got)
	}

	if !tr.Finished() {
		t.Error("transfer not finished with ACTIVE0 clear")
	}
}

func TestStartTransferFromPeripheral(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(0).Enable(h)

	periph := regEndpoint{addr: new(uint32)}
	buf := make(Buffer, 4)

	ch.StartTransfer(periph, buf)

	xfercfg := d.hw.CH[0].XFERCFG.Get()
	if got := xfercfgCount(xfercfg); got != 3 {
		t.Errorf("XFERCFG count = %d, want 3", got)
	}
	if got := (xfercfg >> xfercfgSrcIncPos) & 0x3; got != uint32(IncrementNone) {
		t.Errorf("SRCINC = %d, want %d", got, IncrementNone)
	}
	if got := (xfercfg >> xfercfgDstIncPos) & 0x3; got != uint32(Increment1X) {
		t.Errorf("DSTINC = %d, want %d", got, Increment1X)
	}

	desc := &d.table[0]
	if want := uint32(uintptr(unsafe.Pointer(&buf[3]))); desc.DestEnd != want {
		t.Errorf("descriptor dest end = %#x, want base+3 = %#x", desc.DestEnd, want)
	}
}

func TestStartTransferChannelIsolation(t *testing.T) {
	d, h := testDMA(t)
	cs := d.Channels()
	ch1 := cs.Channel(1).Enable(h)
	ch4 := cs.Channel(4).Enable(h)

	bufA := make(Buffer, 8)
	bufB := make(Buffer, 16)
	periph := regEndpoint{addr: new(uint32)}

	ch1.StartTransfer(bufA, periph)
	xfercfg1 := d.hw.CH[1].XFERCFG.Get()
	desc1 := d.table[1]

	ch4.StartTransfer(bufB, periph)

	if got := d.hw.CH[1].XFERCFG.Get(); got != xfercfg1 {
		t.Error("starting channel 4 changed channel 1's XFERCFG")
	}
	if d.table[1] != desc1 {
		t.Error("starting channel 4 changed channel 1's descriptor")
	}
	if got := xfercfgCount(d.hw.CH[4].XFERCFG.Get()); got != 15 {
		t.Errorf("channel 4 count = %d, want 15", got)
	}
	if !d.hw.ENABLESET0.HasBits(1<<1) || !d.hw.ENABLESET0.HasBits(1<<4) {
		t.Errorf("ENABLESET0 = %#x, want both channel bits", d.hw.ENABLESET0.Get())
	}

	// Channels that never started stay untouched.
	for _, i := range []int{0, 2, 3, 5} {
		if d.hw.CH[i].XFERCFG.Get() != 0 || d.hw.CH[i].CFG.Get() != 0 {
			t.Errorf("channel %d registers written", i)
		}
		if (d.table[i] != ChannelDescriptor{}) {
			t.Errorf("channel %d descriptor written", i)
		}
	}
}

func TestStartTransferUnsupportedShapes(t *testing.T) {
	d, h := testDMA(t)
	cs := d.Channels()

	// Two memory regions: both endpoints supply a count.
	ch := cs.Channel(3).Enable(h)
	expectPanic(t, badTransferShape, func() {
		ch.StartTransfer(make(Buffer, 4), make(Buffer, 4))
	})

	// Two peripherals: neither supplies a count.
	ch2 := cs.Channel(5).Enable(h)
	periph := regEndpoint{addr: new(uint32)}
	expectPanic(t, badTransferShape, func() {
		ch2.StartTransfer(periph, periph)
	})
}

func TestStartTransferZeroLengthFastPath(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(6).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(Buffer(nil), periph)
	if !tr.Finished() {
		t.Error("zero-length transfer not finished immediately")
	}
	if d.hw.CH[6].XFERCFG.Get() != 0 || d.hw.CH[6].CFG.Get() != 0 {
		t.Error("zero-length transfer wrote channel configuration")
	}
	if d.hw.ENABLESET0.Get() != 0 || d.hw.SETTRIG0.Get() != 0 {
		t.Error("zero-length transfer touched the shared registers")
	}
	if (d.table[6] != ChannelDescriptor{}) {
		t.Error("zero-length transfer wrote the descriptor")
	}

	// The channel comes back immediately.
	ch, _, _ = tr.Wait()
	tr = ch.StartTransfer(make(Buffer, 1), periph)
	if got := xfercfgCount(d.hw.CH[6].XFERCFG.Get()); got != 0 {
		t.Errorf("count after 1-byte transfer = %d, want 0", got)
	}
	tr.Wait()
}

func TestStartTransferFullDestFastPath(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(7).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(periph, Buffer(nil))
	if !tr.Finished() {
		t.Error("transfer into a full destination not finished immediately")
	}
	if d.hw.SETTRIG0.Get() != 0 {
		t.Error("transfer into a full destination was triggered")
	}
}

func TestStartTransferOversizedPanics(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(8).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	expectPanic(t, badSource, func() {
		ch.StartTransfer(make(Buffer, MaxTransferUnits+1), periph)
	})
	expectPanic(t, badDest, func() {
		ch.StartTransfer(periph, make(Buffer, MaxTransferUnits+1))
	})
	expectPanic(t, badDest, func() {
		ch.StartTransfer(make(Buffer, 4), regEndpoint{})
	})

	// Nothing was programmed before the panics.
	if d.hw.CH[8].XFERCFG.Get() != 0 || d.hw.ENABLESET0.Get() != 0 || d.hw.SETTRIG0.Get() != 0 {
		t.Error("rejected transfer wrote registers")
	}
}

func TestTransferWaitReclaimsOnce(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(9).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(make(Buffer, 2), periph)
	ch, src, dst := tr.Wait()
	if src == nil || dst == nil {
		t.Error("Wait did not hand back the endpoints")
	}
	if ch.Index() != 9 {
		t.Errorf("Wait handed back channel %d, want 9", ch.Index())
	}
	expectPanic(t, badReclaim, func() {
		tr.Wait()
	})
}

func TestTransferFinishedTracksActive(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(10).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(make(Buffer, 2), periph)

	d.hw.ACTIVE0.SetBits(1 << 10)
	if tr.Finished() {
		t.Error("transfer finished while the channel's ACTIVE0 bit is set")
	}
	d.hw.ACTIVE0.ClearBits(1 << 10)
	if !tr.Finished() {
		t.Error("transfer not finished after the ACTIVE0 bit cleared")
	}
	tr.Wait()
}

func TestStartTransferWhileInFlightPanics(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(12).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(make(Buffer, 4), periph)
	d.hw.ACTIVE0.SetBits(1 << 12)

	// The caller kept a copy of the channel; using it to start again
	// while the hardware is running must be rejected before anything
	// is rewritten.
	xfercfg := d.hw.CH[12].XFERCFG.Get()
	desc := d.table[12]
	expectPanic(t, badChannelBusy, func() {
		ch.StartTransfer(make(Buffer, 2), periph)
	})
	if d.hw.CH[12].XFERCFG.Get() != xfercfg {
		t.Error("rejected re-start rewrote the active channel's XFERCFG")
	}
	if d.table[12] != desc {
		t.Error("rejected re-start rewrote the active channel's descriptor")
	}

	// Reclaiming the transfer frees the channel for the next one.
	d.hw.ACTIVE0.ClearBits(1 << 12)
	ch, _, _ = tr.Wait()
	tr = ch.StartTransfer(make(Buffer, 2), periph)
	tr.Wait()
}

func TestAbortFreesChannelForRestart(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(13).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(make(Buffer, 4), periph)
	ch, _, _ = tr.Abort()
	tr = ch.StartTransfer(make(Buffer, 4), periph)
	tr.Wait()
}

func TestTransferAbort(t *testing.T) {
	d, h := testDMA(t)
	ch := d.Channels().Channel(11).Enable(h)
	periph := regEndpoint{addr: new(uint32)}

	tr := ch.StartTransfer(make(Buffer, 8), periph)
	ch, _, _ = tr.Abort()
	if ch.Index() != 11 {
		t.Errorf("Abort handed back channel %d, want 11", ch.Index())
	}
	if got := d.hw.ENABLECLR0.Get(); got != 1<<11 {
		t.Errorf("ENABLECLR0 = %#x, want channel 11's bit", got)
	}
	if got := d.hw.ABORT0.Get(); got != 1<<11 {
		t.Errorf("ABORT0 = %#x, want channel 11's bit", got)
	}
	expectPanic(t, badReclaim, func() {
		tr.Abort()
	})
}
