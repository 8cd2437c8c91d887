package thermalprinter

import (
	"errors"
	"testing"

	"github.com/kellegous/poop"
)

func TestHasKind(t *testing.T) {
	tests := []struct {
		Name     string
		Err      error
		Kind     ErrorKind
		Expected bool
	}{
		{
			Name:     "nil",
			Err:      nil,
			Kind:     KindNotConnected,
			Expected: false,
		},
		{
			Name:     "direct",
			Err:      &Error{Kind: KindNotConnected, Op: "PrintRaw"},
			Kind:     KindNotConnected,
			Expected: true,
		},
		{
			Name:     "wrong kind",
			Err:      &Error{Kind: KindNotConnected, Op: "PrintRaw"},
			Kind:     KindInvalidAddress,
			Expected: false,
		},
		{
			Name:     "chained",
			Err:      poop.Chain(&Error{Kind: KindTransportFailure, Op: "Connect"}),
			Kind:     KindTransportFailure,
			Expected: true,
		},
		{
			Name:     "unrelated",
			Err:      errors.New("nope"),
			Kind:     KindNotConnected,
			Expected: false,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			if got := HasKind(test.Err, test.Kind); got != test.Expected {
				t.Fatalf("expected %t, got %t", test.Expected, got)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: KindNotConnected, Op: "PrintRaw"}
	if got := err.Error(); got != "PrintRaw: NotConnected" {
		t.Fatalf("unexpected message: %q", got)
	}

	err = &Error{Kind: KindTransportFailure, Op: "Connect", Err: errors.New("out of range")}
	if got := err.Error(); got != "Connect: TransportFailure: out of range" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("out of range")
	err := &Error{Kind: KindTransportFailure, Op: "Connect", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to be in the chain")
	}
}
