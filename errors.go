package thermalprinter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures reported by this package.
type ErrorKind byte

const (
	// KindCapabilityUnavailable means the operation is not supported on
	// the current platform or transport.
	KindCapabilityUnavailable ErrorKind = iota
	// KindNotConnected means device I/O was attempted without an active
	// session.
	KindNotConnected
	// KindAlreadyConnected is reserved for transports that refuse to
	// replace an active session. Session itself uses the replace policy
	// and never returns it.
	KindAlreadyConnected
	// KindTransportFailure means the underlying wireless I/O failed, for
	// example because the device is out of range.
	KindTransportFailure
	// KindInvalidAddress means a malformed or unknown device address was
	// passed to Connect.
	KindInvalidAddress
)

var errorKindText = map[ErrorKind]string{
	KindCapabilityUnavailable: "CapabilityUnavailable",
	KindNotConnected:          "NotConnected",
	KindAlreadyConnected:      "AlreadyConnected",
	KindTransportFailure:      "TransportFailure",
	KindInvalidAddress:        "InvalidAddress",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", byte(k))
}

// Error is the failure type returned by the operations in this package. Op
// names the operation that failed.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HasKind reports whether err carries the given kind anywhere in its
// chain.
func HasKind(err error, kind ErrorKind) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == kind
	}
	return false
}

func errUnavailable(op string) *Error {
	return &Error{Kind: KindCapabilityUnavailable, Op: op}
}
