// Package syscon exposes the slice of the LPC8xx system configuration
// block that peripheral drivers need: the AHB clock gates and the
// peripheral reset lines. Clock-source selection and divider arithmetic
// are out of scope; configure those before handing the Handle to a
// driver.
package syscon

import "github.com/tinygo-org/lpc8xx-dma/internal/hw"

// registers is the part of the SYSCON register file this package
// touches. See user manual, chapter 5.
type registers struct {
	SYSMEMREMAP   hw.Reg32     // 0x000
	PRESETCTRL    hw.Reg32     // 0x004
	_             [30]hw.Reg32
	SYSAHBCLKCTRL hw.Reg32     // 0x080
}

// Peripheral identifies a peripheral by its bit position, shared
// between the clock control and reset control registers.
type Peripheral uint8

const (
	UART0 Peripheral = 14
	UART1 Peripheral = 15
	UART2 Peripheral = 16
	DMA   Peripheral = 29
)

// Handle gates peripheral clocks and resets. Drivers take a *Handle as
// proof that system configuration is reachable.
type Handle struct {
	hw *registers
}

var theHandle = Handle{hw: syscon0}

// Take returns the system configuration handle.
func Take() *Handle {
	return &theHandle
}

// EnableClock opens the peripheral's AHB clock gate.
func (h *Handle) EnableClock(p Peripheral) {
	h.hw.SYSAHBCLKCTRL.SetBits(1 << p)
}

// DisableClock closes the peripheral's AHB clock gate.
func (h *Handle) DisableClock(p Peripheral) {
	h.hw.SYSAHBCLKCTRL.ClearBits(1 << p)
}

// AssertReset holds the peripheral in reset. The PRESETCTRL bits are
// active low: a zero bit asserts reset.
func (h *Handle) AssertReset(p Peripheral) {
	h.hw.PRESETCTRL.ClearBits(1 << p)
}

// DeassertReset releases the peripheral from reset.
func (h *Handle) DeassertReset(p Peripheral) {
	h.hw.PRESETCTRL.SetBits(1 << p)
}
