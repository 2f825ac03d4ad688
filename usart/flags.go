package usart

// Flag is a bit of the USART STAT register. See user manual, section
// 13.6.4.
type Flag uint32

const (
	// FlagRxReady: receiver ready.
	FlagRxReady Flag = 1 << 0
	// FlagRxIdle: receiver idle.
	FlagRxIdle Flag = 1 << 1
	// FlagTxReady: transmitter ready.
	FlagTxReady Flag = 1 << 2
	// FlagTxIdle: transmitter idle.
	FlagTxIdle Flag = 1 << 3
	// FlagCTS: CTS signal asserted.
	FlagCTS Flag = 1 << 4
	// FlagDeltaCTS: change of CTS signal detected.
	FlagDeltaCTS Flag = 1 << 5
	// FlagTxDisabled: transmitter disabled.
	FlagTxDisabled Flag = 1 << 6
	// FlagOverrun: overrun error.
	FlagOverrun Flag = 1 << 8
	// FlagRxBreak: received break.
	FlagRxBreak Flag = 1 << 10
	// FlagDeltaRxBreak: RXBRK signal has changed state.
	FlagDeltaRxBreak Flag = 1 << 11
	// FlagStart: start detected.
	FlagStart Flag = 1 << 12
	// FlagFramingError: framing error.
	FlagFramingError Flag = 1 << 13
	// FlagParityError: parity error.
	FlagParityError Flag = 1 << 14
	// FlagRxNoise: received noise.
	FlagRxNoise Flag = 1 << 15
	// FlagAutobaudError: autobaud error.
	FlagAutobaudError Flag = 1 << 16
)

// clearableFlags are the STAT bits cleared by writing a one. The rest
// are read-only status.
const clearableFlags = FlagDeltaCTS | FlagOverrun | FlagDeltaRxBreak |
	FlagStart | FlagFramingError | FlagParityError | FlagRxNoise |
	FlagAutobaudError

const badFlagClear = "usart: flag is read-only"

// IsFlagSet reports whether the flag is set in STAT.
func (u *USART) IsFlagSet(f Flag) bool {
	return u.hw.STAT.HasBits(uint32(f))
}

// ClearFlag clears a write-one-to-clear flag. Panics for read-only
// flags, which only the hardware can clear.
func (u *USART) ClearFlag(f Flag) {
	if f&clearableFlags != f {
		panic(badFlagClear)
	}
	u.hw.STAT.Set(uint32(f))
}
