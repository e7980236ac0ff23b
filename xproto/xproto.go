// Package xproto is the runtime support package for generated protocol
// bindings. Generated types assert that they satisfy the contracts declared
// here, and the client exchanges their bytes over a Connection.
package xproto

// ResourceId is a protocol resource identifier as it travels on the wire.
type ResourceId uint32

// Event is implemented by every generated event type.
type Event interface {
	Opcode() uint8
}

// Error is implemented by every generated error type.
type Error interface {
	Opcode() uint8
}

// Request is implemented by every generated request whose reply decodes
// into R.
type Request[R any] interface {
	Opcode() uint8
	Reply() *R
}

// XidType is implemented by every typed wrapper around a ResourceId.
type XidType interface {
	Xid() ResourceId
}
