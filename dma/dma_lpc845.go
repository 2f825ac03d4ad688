//go:build tinygo && !lpc82x

package dma

import "unsafe"

// NumChannels is the number of DMA channels on the LPC845.
const NumChannels = 25

// DMA controller register file at its fixed bus address.
var dma0 = (*registers)(unsafe.Pointer(uintptr(0x50008000)))
