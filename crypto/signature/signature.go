// Package signature contains the cryptographic signature types.
package signature

import "errors"

// ErrVerification is the single failure value reported by every fallible
// decoding and verification operation in this module.
//
// Distinguishing a malformed signature from a wrong signature or an invalid
// point on a verification path is a potential side channel, so all such
// cases collapse into this one opaque value.
var ErrVerification = errors.New("signature: verification error")

// PublicKey is a public key.
type PublicKey interface {
	// String returns a string representation of the public key.
	String() string

	// Equal compares vs another public key for equality.
	Equal(other PublicKey) bool

	// Verify returns nil iff the signature is valid for the public key over
	// the message. Any failure is reported as ErrVerification.
	Verify(message, signature []byte) error
}
