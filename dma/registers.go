package dma

import "github.com/tinygo-org/lpc8xx-dma/internal/hw"

// registers is the DMA controller register file. Offsets follow the
// LPC82x/LPC845 user manual, chapter 12. The shared registers hold one
// bit per channel; the per-channel registers live in an array of
// 16-byte blocks starting at offset 0x400.
type registers struct {
	CTRL     hw.Reg32    // 0x000
	INTSTAT  hw.Reg32    // 0x004
	SRAMBASE hw.Reg32    // 0x008
	_        [5]hw.Reg32

	ENABLESET0 hw.Reg32      // 0x020
	_          hw.Reg32
	ENABLECLR0 hw.Reg32      // 0x028
	_          hw.Reg32
	ACTIVE0    hw.Reg32      // 0x030
	_          hw.Reg32
	BUSY0      hw.Reg32      // 0x038
	_          hw.Reg32
	ERRINT0    hw.Reg32      // 0x040
	_          hw.Reg32
	INTENSET0  hw.Reg32      // 0x048
	_          hw.Reg32
	INTENCLR0  hw.Reg32      // 0x050
	_          hw.Reg32
	INTA0      hw.Reg32      // 0x058
	_          hw.Reg32
	INTB0      hw.Reg32      // 0x060
	_          hw.Reg32
	SETVALID0  hw.Reg32      // 0x068
	_          hw.Reg32
	SETTRIG0   hw.Reg32      // 0x070
	_          hw.Reg32
	ABORT0     hw.Reg32      // 0x078
	_          [225]hw.Reg32

	CH [maxChannels]channelRegisters // 0x400
}

// channelRegisters is one channel's dedicated register block.
type channelRegisters struct {
	CFG     hw.Reg32
	CTLSTAT hw.Reg32
	XFERCFG hw.Reg32
	_       hw.Reg32
}

// maxChannels sizes the register file for the largest chip variant. The
// LPC82x maps the same register space with the upper channel blocks
// reserved.
const maxChannels = 25

// CTRL bits. See user manual, section 12.6.1.
const (
	ctrlEnable = 1 << 0
)

// Channel CFG bits. See user manual, section 12.6.16.
const (
	cfgPeriphReqEn   = 1 << 0
	cfgHWTrigEn      = 1 << 1
	cfgChPriorityPos = 16
)

// Channel XFERCFG bits. See user manual, section 12.6.18.
const (
	xfercfgCfgValid = 1 << 0
	xfercfgReload   = 1 << 1
	xfercfgSWTrig   = 1 << 2
	xfercfgClrTrig  = 1 << 3
	xfercfgSetIntA  = 1 << 4
	xfercfgSetIntB  = 1 << 5

	xfercfgWidthPos  = 8
	xfercfgSrcIncPos = 12
	xfercfgDstIncPos = 14
	xfercfgCountPos  = 16
	xfercfgCountMsk  = 0x3ff << xfercfgCountPos
)
