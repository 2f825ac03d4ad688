// Package usart drives the LPC8xx USART peripherals, in polled mode and
// as DMA transfer endpoints. Baud-rate and clock-source arithmetic are
// out of scope: Config takes the already computed divider values.
package usart

import (
	"errors"

	"github.com/tinygo-org/lpc8xx-dma/internal/hw"
	"github.com/tinygo-org/lpc8xx-dma/syscon"
)

// registers is a USART register file. See user manual, chapter 13.
type registers struct {
	CFG       hw.Reg32 // 0x00
	CTL       hw.Reg32 // 0x04
	STAT      hw.Reg32 // 0x08
	INTENSET  hw.Reg32 // 0x0C
	INTENCLR  hw.Reg32 // 0x10
	RXDAT     hw.Reg32 // 0x14
	RXDATSTAT hw.Reg32 // 0x18
	TXDAT     hw.Reg32 // 0x1C
	BRG       hw.Reg32 // 0x20
	INTSTAT   hw.Reg32 // 0x24
	OSR       hw.Reg32 // 0x28
	ADDR      hw.Reg32 // 0x2C
}

// CFG bits. See user manual, section 13.6.1.
const (
	cfgEnable   = 1 << 0
	cfgDatalen8 = 1 << 2
)

const badOversample = "usart: oversample rate must be between 5 and 16"

var errNoData = errors.New("usart: no data received")

// The DMA request lines are hardwired to channels on the LPC8xx: each
// USART's receiver and transmitter pace one fixed channel each. See
// user manual, table 12.1.
const (
	DMAChannelUSART0Rx = 0
	DMAChannelUSART0Tx = 1
	DMAChannelUSART1Rx = 2
	DMAChannelUSART1Tx = 3
	DMAChannelUSART2Rx = 4
	DMAChannelUSART2Tx = 5
)

// USART peripheral handles.
var (
	USART0 = &USART{hw: usart0, clock: syscon.UART0}
	USART1 = &USART{hw: usart1, clock: syscon.UART1}
	USART2 = &USART{hw: usart2, clock: syscon.UART2}
)

// USART represents one USART peripheral.
type USART struct {
	hw    *registers
	clock syscon.Peripheral
}

// Config holds the divider values for a USART. The effective baud rate
// is mainClock / (Prescaler * Oversample); whoever selects the clock
// computes these.
type Config struct {
	// Prescaler is written to BRG plus one; 0 means divide by one.
	Prescaler uint16
	// Oversample is the number of bit-clock samples per data bit,
	// 5 to 16. 0 selects the hardware default of 16.
	Oversample uint8
}

// Configure enables the peripheral's clock, releases its reset,
// programs the dividers and enables it for 8N1 operation. The returned
// Serial does polled I/O; attach a DMA channel with UseDMA for bulk
// transmission.
func (u *USART) Configure(sys *syscon.Handle, cfg Config) *Serial {
	if cfg.Oversample == 0 {
		cfg.Oversample = 16
	}
	if cfg.Oversample < 5 || cfg.Oversample > 16 {
		panic(badOversample)
	}

	sys.EnableClock(u.clock)
	sys.AssertReset(u.clock)
	sys.DeassertReset(u.clock)

	u.hw.OSR.Set(uint32(cfg.Oversample) - 1)
	u.hw.BRG.Set(uint32(cfg.Prescaler))
	u.hw.CFG.Set(cfgEnable | cfgDatalen8)

	return &Serial{u: u}
}

// Tx returns the transmitter's DMA endpoint: the fixed TXDAT address,
// with no address increment and no transfer count. The memory side of
// the transfer paces it.
func (u *USART) Tx() Tx {
	return Tx{u: u}
}

// Rx returns the receiver's DMA endpoint.
func (u *USART) Rx() Rx {
	return Rx{u: u}
}
