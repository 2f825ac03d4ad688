//go:build tinygo

package usart

import "unsafe"

// USART register files at their fixed bus addresses.
var (
	usart0 = (*registers)(unsafe.Pointer(uintptr(0x40064000)))
	usart1 = (*registers)(unsafe.Pointer(uintptr(0x40068000)))
	usart2 = (*registers)(unsafe.Pointer(uintptr(0x4006C000)))
)
