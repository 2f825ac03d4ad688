//go:build !tinygo

package hw

import "sync/atomic"

// Reg32 mirrors the method set of runtime/volatile.Register32 over plain
// memory, so register-level code paths run under go test on the host.
type Reg32 struct {
	reg uint32
}

// Get returns the register value.
func (r *Reg32) Get() uint32 {
	return atomic.LoadUint32(&r.reg)
}

// Set writes value to the register.
func (r *Reg32) Set(value uint32) {
	atomic.StoreUint32(&r.reg, value)
}

// SetBits sets the bits in value.
func (r *Reg32) SetBits(value uint32) {
	r.Set(r.Get() | value)
}

// ClearBits clears the bits in value.
func (r *Reg32) ClearBits(value uint32) {
	r.Set(r.Get() &^ value)
}

// HasBits reports whether any bit in value is set.
func (r *Reg32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

var fence uint32

// Fence orders all prior memory accesses before any register write that
// follows it. On the host an atomic read-modify-write stands in for the
// processor barrier.
func Fence() {
	atomic.AddUint32(&fence, 1)
}
