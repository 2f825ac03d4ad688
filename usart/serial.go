package usart

import (
	"runtime"

	"tinygo.org/x/drivers"

	"github.com/tinygo-org/lpc8xx-dma/dma"
)

// Serial is a configured USART. Reads and single-byte writes are
// polled; bulk transfers go through DMA once channels are attached.
type Serial struct {
	u     *USART
	tx    dma.EnabledChannel
	rx    dma.EnabledChannel
	hasTx bool
	hasRx bool
}

var _ drivers.UART = (*Serial)(nil)

// UseTxDMA attaches an enabled DMA channel that Write uses for bulk
// transmission. The channel must be the one hardwired to this USART's
// transmit request line (DMAChannelUSART0Tx and friends).
func (s *Serial) UseTxDMA(ch dma.EnabledChannel) {
	s.tx = ch
	s.hasTx = true
}

// UseRxDMA attaches an enabled DMA channel that Read uses for bulk
// reception. The channel must be the one hardwired to this USART's
// receive request line.
func (s *Serial) UseRxDMA(ch dma.EnabledChannel) {
	s.rx = ch
	s.hasRx = true
}

// Buffered returns the number of bytes ready to read without blocking.
// The LPC8xx USART has a one-byte receiver holding register.
func (s *Serial) Buffered() int {
	if s.u.IsFlagSet(FlagRxReady) {
		return 1
	}
	return 0
}

// ReadByte returns the received byte, or an error if none has arrived.
func (s *Serial) ReadByte() (byte, error) {
	if !s.u.IsFlagSet(FlagRxReady) {
		return 0, errNoData
	}
	return byte(s.u.hw.RXDAT.Get()), nil
}

// WriteByte writes one byte out of the transmitter, blocking until the
// transmitter has room.
func (s *Serial) WriteByte(b byte) error {
	for !s.u.IsFlagSet(FlagTxReady) {
		runtime.Gosched()
	}
	s.u.hw.TXDAT.Set(uint32(b))
	return nil
}

// Write sends p out of the transmitter. With a DMA channel attached the
// bytes move without CPU copies, split into chunks the hardware can
// represent; otherwise each byte is written polled.
//
// p must stay in place until Write returns; Write holds each transfer
// until completion, so that is the only requirement.
func (s *Serial) Write(p []byte) (int, error) {
	if !s.hasTx {
		for _, b := range p {
			s.WriteByte(b)
		}
		return len(p), nil
	}

	written := 0
	for len(p) > 0 {
		n := len(p)
		if n > dma.MaxTransferUnits {
			n = dma.MaxTransferUnits
		}
		t := s.tx.StartTransfer(dma.Buffer(p[:n]), s.u.Tx())
		s.tx, _, _ = t.Wait()
		written += n
		p = p[n:]
	}
	return written, nil
}

// Read fills buf from the receiver through the attached DMA channel,
// blocking until every byte of buf has arrived. This is not io.Reader
// short-read behaviour: on a line that goes quiet mid-buffer, Read
// blocks until the remaining bytes show up, so size buf to a framing
// the far side is known to send. For byte-at-a-time consumption use
// Buffered and ReadByte, which never block.
//
// Without DMA attached Read polls, returning once at least one byte
// has arrived.
func (s *Serial) Read(buf []byte) (int, error) {
	if !s.hasRx {
		for s.Buffered() == 0 {
			runtime.Gosched()
		}
		n := 0
		for n < len(buf) && s.Buffered() > 0 {
			b, err := s.ReadByte()
			if err != nil {
				return n, err
			}
			buf[n] = b
			n++
		}
		return n, nil
	}

	read := 0
	for len(buf) > 0 {
		n := len(buf)
		if n > dma.MaxTransferUnits {
			n = dma.MaxTransferUnits
		}
		t := s.rx.StartTransfer(s.u.Rx(), dma.Buffer(buf[:n]))
		s.rx, _, _ = t.Wait()
		read += n
		buf = buf[n:]
	}
	return read, nil
}
