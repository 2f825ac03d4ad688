//go:build tinygo

package hw

import (
	"device/arm"
	"runtime/volatile"
)

// Reg32 is a 32-bit memory mapped hardware register.
type Reg32 = volatile.Register32

// Fence orders all prior memory accesses before any register write that
// follows it. Used before handing a buffer's address to autonomous
// hardware, so the hardware cannot observe the buffer before the writes
// that filled it.
func Fence() {
	arm.Asm("dmb")
}
