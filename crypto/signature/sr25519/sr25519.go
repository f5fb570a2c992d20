// Package sr25519 provides Sr25519 signature verification.
package sr25519

import (
	"crypto/sha512"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/oasisprotocol/curve25519-voi/primitives/sr25519"

	"github.com/lispc/signatures/crypto/signature"
)

const (
	// PublicKeySize is the size of a public key in bytes.
	PublicKeySize = 32

	// SignatureSize is the size of a signature in bytes.
	SignatureSize = 64

	// componentSize is the size of either signature component in bytes.
	componentSize = SignatureSize / 2
)

// Schnorr verification operates over a transcript rather than a bare
// digest; signatures accepted here must have been produced over the same
// transcript construction.
var signingContext = sr25519.NewSigningContext(nil)

func newTranscript(message []byte) *sr25519.SigningTranscript {
	h := sha512.New512_256()
	_, _ = h.Write(message)
	return signingContext.NewTranscriptHash(h)
}

// Signature is an Sr25519 signature in R || s form.
type Signature struct {
	inner [SignatureSize]byte
}

// NewSignature constructs a signature from its serialized form, rejecting
// encodings the scheme itself considers invalid.
func NewSignature(raw []byte) (*Signature, error) {
	if len(raw) != SignatureSize {
		return nil, signature.ErrVerification
	}
	if _, err := sr25519.NewSignatureFromBytes(raw); err != nil {
		return nil, signature.ErrVerification
	}
	var sig Signature
	copy(sig.inner[:], raw)
	return &sig, nil
}

// ParseSignatureHex parses a signature from fixed-width hexadecimal text.
// Lowercase and uppercase inputs are both accepted; mixed case is rejected.
func ParseSignatureHex(text string) (*Signature, error) {
	var buf [SignatureSize]byte
	if err := signature.DecodeHex(buf[:], text); err != nil {
		return nil, err
	}
	return NewSignature(buf[:])
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
		fmt.Fprintf(f, "%%!%c(sr25519.Signature)", verb)
	}
}

var (
	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
)

// PublicKey is an Sr25519 public key.
type PublicKey struct {
	inner *sr25519.PublicKey
}

type serializedPublicKey struct {
	Sr25519 []byte `json:"sr25519"`
}

// MarshalCBOR encodes the public key as CBOR.
func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	b, err := pk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(serializedPublicKey{Sr25519: b})
}

// MarshalJSON encodes the public key as JSON.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	b, err := pk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.Marshal(serializedPublicKey{Sr25519: b})
}

// MarshalBinary encodes a public key into binary form. A zero-value key
// has no binary form and fails with ErrVerification.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	if pk.inner == nil {
		return nil, signature.ErrVerification
	}
	return pk.inner.MarshalBinary()
}

// UnmarshalBinary decodes a binary marshaled public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	parsed, err := sr25519.NewPublicKeyFromBytes(data)
	if err != nil {
		return signature.ErrVerification
	}
	pk.inner = parsed
	return nil
}

// MarshalText encodes a public key into text form.
func (pk PublicKey) MarshalText() ([]byte, error) {
	b, err := pk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return []byte(base64.StdEncoding.EncodeToString(b)), nil
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
	if pk.inner == nil || opk.inner == nil {
		return pk.inner == opk.inner
	}
	return pk.inner.Equal(opk.inner)
}

// Verify returns nil iff the signature is valid for the public key over
// the message.
func (pk PublicKey) Verify(message, sig []byte) error {
	if pk.inner == nil {
		return signature.ErrVerification
	}
	srSig, err := sr25519.NewSignatureFromBytes(sig)
	if err != nil {
		return signature.ErrVerification
	}
	if !pk.inner.Verify(newTranscript(message), srSig) {
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
