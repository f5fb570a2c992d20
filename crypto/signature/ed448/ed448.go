// Package ed448 provides Ed448 signature verification.
package ed448

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	circl "github.com/cloudflare/circl/sign/ed448"
	"github.com/fxamacker/cbor/v2"

	"github.com/lispc/signatures/crypto/signature"
)

const (
	// PublicKeySize is the size of a public key in bytes.
	PublicKeySize = circl.PublicKeySize

	// SignatureSize is the size of a signature in bytes.
	SignatureSize = circl.SignatureSize

	// componentSize is the size of either signature component in bytes.
	componentSize = SignatureSize / 2
)

// Signature is an Ed448 signature in R || s form.
type Signature struct {
	inner [SignatureSize]byte
}

// NewSignature constructs a signature from its serialized form.
func NewSignature(raw []byte) (*Signature, error) {
	if len(raw) != SignatureSize {
		return nil, signature.ErrVerification
	}
	var sig Signature
	copy(sig.inner[:], raw)
	return &sig, nil
}

// ParseSignatureHex parses a signature from fixed-width hexadecimal text.
// Lowercase and uppercase inputs are both accepted; mixed case is rejected.
func ParseSignatureHex(text string) (*Signature, error) {
	var sig Signature
	if err := sig.UnmarshalText([]byte(text)); err != nil {
		return nil, err
	}
	return &sig, nil
}

// R returns the signature's encoded R point.
func (sig *Signature) R() []byte {
	return sig.inner[:componentSize]
}

// S returns the signature's encoded s scalar.
func (sig *Signature) S() []byte {
	return sig.inner[componentSize:]
}

// Bytes returns the R || s serialization of the signature.
func (sig *Signature) Bytes() []byte {
	return append([]byte(nil), sig.inner[:]...)
}

// Equal compares vs another signature for equality.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.inner == other.inner
}

// MarshalText encodes the signature as lowercase hexadecimal.
func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(signature.EncodeHex(false, sig.inner[:])), nil
}

// UnmarshalText decodes fixed-width hexadecimal text, accepting either
// letter case but rejecting mixed case.
func (sig *Signature) UnmarshalText(text []byte) error {
	var buf [SignatureSize]byte
	if err := signature.DecodeHex(buf[:], string(text)); err != nil {
		return err
	}
	sig.inner = buf
	return nil
}

// String returns the lowercase hexadecimal representation of the signature.
func (sig *Signature) String() string {
	return signature.EncodeHex(false, sig.inner[:])
}

// Format implements fmt.Formatter, rendering the signature as fixed-width
// hexadecimal: lowercase for %x, uppercase for %X. %v and %s behave as %x.
func (sig *Signature) Format(f fmt.State, verb rune) {
	switch verb {
	case 'X':
		_, _ = io.WriteString(f, signature.EncodeHex(true, sig.inner[:]))
	case 'x', 'v', 's':
		_, _ = io.WriteString(f, signature.EncodeHex(false, sig.inner[:]))
	default:
		fmt.Fprintf(f, "%%!%c(ed448.Signature)", verb)
	}
}

var (
	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
)

// PublicKey is an Ed448 public key.
type PublicKey struct {
	inner circl.PublicKey
}

type serializedPublicKey struct {
	Ed448 []byte `json:"ed448"`
}

// MarshalCBOR encodes the public key as CBOR.
func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	return cbor.Marshal(serializedPublicKey{Ed448: b})
}

// MarshalJSON encodes the public key as JSON.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	return json.Marshal(serializedPublicKey{Ed448: b})
}

// MarshalBinary encodes a public key into binary form.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), pk.inner...), nil
}

// UnmarshalBinary decodes a binary marshaled public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	if len(data) != PublicKeySize {
		return signature.ErrVerification
	}
	pk.inner = append(circl.PublicKey(nil), data...)
	return nil
}

// MarshalText encodes a public key into text form.
func (pk PublicKey) MarshalText() ([]byte, error) {
	serialized, _ := pk.MarshalBinary()
	return []byte(base64.StdEncoding.EncodeToString(serialized)), nil
}

// UnmarshalText decodes a text marshaled public key.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	decoded, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return signature.ErrVerification
	}
	return pk.UnmarshalBinary(decoded)
}

// String returns a string representation of the public key.
func (pk PublicKey) String() string {
	str, _ := pk.MarshalText()
	return string(str)
}

// Equal compares vs another public key for equality.
func (pk PublicKey) Equal(other signature.PublicKey) bool {
	opk, ok := other.(PublicKey)
	if !ok {
		return false
	}
	return bytes.Equal(pk.inner, opk.inner)
}

// Verify returns nil iff the signature is valid for the public key over
// the message. Signatures are verified with an empty context string.
func (pk PublicKey) Verify(message, sig []byte) error {
	if len(pk.inner) != PublicKeySize || len(sig) != SignatureSize {
		return signature.ErrVerification
	}
	if !circl.Verify(pk.inner, message, sig, "") {
		return signature.ErrVerification
	}
	return nil
}

// VerifySignature is like Verify for an already-parsed signature value.
func (pk PublicKey) VerifySignature(message []byte, sig *Signature) error {
	if sig == nil {
		return signature.ErrVerification
	}
	return pk.Verify(message, sig.inner[:])
}

// NewPublicKey creates a new public key from the given Base64
// representation or panics.
func NewPublicKey(text string) (pk PublicKey) {
	if err := pk.UnmarshalText([]byte(text)); err != nil {
		panic(err)
	}
	return
}
