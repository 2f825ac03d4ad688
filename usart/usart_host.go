//go:build !tinygo

package usart

// On the host the register files are plain memory, so the polled paths
// and DMA endpoints can run under go test.
var (
	usart0 = new(registers)
	usart1 = new(registers)
	usart2 = new(registers)
)
