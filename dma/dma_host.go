//go:build !tinygo

package dma

// NumChannels on host builds matches the LPC845, the larger of the two
// chip variants.
const NumChannels = 25

// On the host the register file is plain memory, so the programming
// protocol can run under go test.
var dma0 = new(registers)
