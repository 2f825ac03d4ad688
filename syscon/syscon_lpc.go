//go:build tinygo

package syscon

import "unsafe"

// SYSCON register file at its fixed bus address.
var syscon0 = (*registers)(unsafe.Pointer(uintptr(0x40048000)))
