//go:build tinygo && lpc82x

package dma

import "unsafe"

// NumChannels is the number of DMA channels on the LPC82x.
const NumChannels = 18

// DMA controller register file at its fixed bus address.
var dma0 = (*registers)(unsafe.Pointer(uintptr(0x50008000)))
