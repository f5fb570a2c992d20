package ecdsa

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lispc/signatures/crypto/signature"
)

// Signature is an ECDSA signature in fixed-width r || s form. Both
// components are the curve's field size wide.
type Signature struct {
	r, s []byte
}

// NewSignature constructs a signature from its two components, which must
// have the same nonzero width.
func NewSignature(r, s []byte) (*Signature, error) {
	if len(r) == 0 || len(r) != len(s) {
		return nil, signature.ErrVerification
	}
	return &Signature{
		r: append([]byte(nil), r...),
		s: append([]byte(nil), s...),
	}, nil
}

// ParseSignature parses a fixed-width r || s signature for the given curve.
// The input must be exactly twice the curve's field size.
func ParseSignature(curve Curve, raw []byte) (*Signature, error) {
	n := curve.FieldSize()
	if len(raw) != 2*n {
		return nil, signature.ErrVerification
	}
	return NewSignature(raw[:n], raw[n:])
}

// ParseSignatureHex parses a signature from fixed-width hexadecimal text.
// Lowercase and uppercase inputs are both accepted; mixed case is rejected.
func ParseSignatureHex(curve Curve, text string) (*Signature, error) {
	buf := make([]byte, 2*curve.FieldSize())
	if err := signature.DecodeHex(buf, text); err != nil {
		return nil, err
	}
	return ParseSignature(curve, buf)
}

// R returns the signature's r component.
func (sig *Signature) R() []byte {
	return sig.r
}

// S returns the signature's s component.
func (sig *Signature) S() []byte {
	return sig.s
}

// Bytes returns the fixed-width r || s serialization of the signature.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, len(sig.r)+len(sig.s))
	out = append(out, sig.r...)
	out = append(out, sig.s...)
	return out
}

// Equal compares vs another signature for equality.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return bytes.Equal(sig.r, other.r) && bytes.Equal(sig.s, other.s)
}

// String returns the lowercase hexadecimal representation of the signature.
func (sig *Signature) String() string {
	return signature.EncodeHex(false, sig.r, sig.s)
}

// Format implements fmt.Formatter, rendering the signature as fixed-width
// hexadecimal: lowercase for %x, uppercase for %X. %v and %s behave as %x.
func (sig *Signature) Format(f fmt.State, verb rune) {
	switch verb {
	case 'X':
		_, _ = io.WriteString(f, signature.EncodeHex(true, sig.r, sig.s))
	case 'x', 'v', 's':
		_, _ = io.WriteString(f, signature.EncodeHex(false, sig.r, sig.s))
	default:
		fmt.Fprintf(f, "%%!%c(ecdsa.Signature)", verb)
	}
}
