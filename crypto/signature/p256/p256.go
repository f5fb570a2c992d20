// Package p256 provides signature verification on the NIST P-256 curve.
package p256

import (
	cryptoecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/lispc/signatures/crypto/signature"
	"github.com/lispc/signatures/crypto/signature/ecdsa"
)

// Curve is the P-256 instantiation of the generic ECDSA curve capability.
// Messages are digested with SHA-256.
var Curve ecdsa.Curve = curve{}

const fieldSize = 32

type curve struct{}

func (curve) Name() string {
	return "P-256"
}

func (curve) FieldSize() int {
	return fieldSize
}

func (curve) Digest(message []byte) []byte {
	h := sha256.Sum256(message)
	return h[:]
}

func (curve) DecodePoint(data []byte) (ecdsa.Point, error) {
	var x, y *big.Int
	switch {
	case len(data) == 1+fieldSize && (data[0] == 0x02 || data[0] == 0x03):
		x, y = elliptic.UnmarshalCompressed(elliptic.P256(), data)
	case len(data) == 1+2*fieldSize && data[0] == 0x04:
		x, y = elliptic.Unmarshal(elliptic.P256(), data)
	}
	if x == nil {
		return nil, signature.ErrVerification
	}
	return &point{x: x, y: y}, nil
}

func (curve) Verify(p ecdsa.Point, digest []byte, sig *ecdsa.Signature) bool {
	pt, ok := p.(*point)
	if !ok {
		return false
	}
	pub := cryptoecdsa.PublicKey{Curve: elliptic.P256(), X: pt.x, Y: pt.y}
	r := new(big.Int).SetBytes(sig.R())
	s := new(big.Int).SetBytes(sig.S())
	return cryptoecdsa.Verify(&pub, digest, r, s)
}

type point struct {
	x, y *big.Int
}

func (p *point) Encode(compress bool) []byte {
	if compress {
		return elliptic.MarshalCompressed(elliptic.P256(), p.x, p.y)
	}
	return elliptic.Marshal(elliptic.P256(), p.x, p.y)
}

// NewVerifyingKey initializes a P-256 verifying key from a SEC1-encoded
// public key.
func NewVerifyingKey(data []byte) (*ecdsa.VerifyingKey, error) {
	return ecdsa.NewVerifyingKey(Curve, data)
}

var (
	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = (*PublicKey)(nil)
)

// PublicKey is a P-256 public key.
type PublicKey cryptoecdsa.PublicKey

type serializedPublicKey struct {
	P256 []byte `json:"p256"`
}

// FromVerifyingKey converts a generic verifying key back into a P-256
// public key. Returns false if the key is not a P-256 key.
func FromVerifyingKey(vk *ecdsa.VerifyingKey) (PublicKey, bool) {
	pt, ok := vk.Point().(*point)
	if !ok {
		return PublicKey{}, false
	}
	return PublicKey{Curve: elliptic.P256(), X: pt.x, Y: pt.y}, true
}

// VerifyingKey converts the public key into a generic verifying key. The
// conversion is lossless and cannot fail.
func (pk PublicKey) VerifyingKey() *ecdsa.VerifyingKey {
	return ecdsa.FromPoint(Curve, &point{x: pk.X, y: pk.Y})
}

// MarshalCBOR encodes the public key as CBOR.
func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	return cbor.Marshal(serializedPublicKey{P256: b})
}

// MarshalJSON encodes the public key as JSON.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	return json.Marshal(serializedPublicKey{P256: b})
}

// MarshalBinary encodes a public key into compressed SEC1 binary form.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return elliptic.MarshalCompressed(elliptic.P256(), pk.X, pk.Y), nil
}

// UnmarshalBinary decodes a binary marshaled public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	vk, err := NewVerifyingKey(data)
	if err != nil {
		return err
	}
	parsed, _ := FromVerifyingKey(vk)
	*pk = parsed
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
	a := cryptoecdsa.PublicKey(pk)
	b := cryptoecdsa.PublicKey(opk)
	return a.Equal(&b)
}

// Verify returns nil iff the signature, in fixed-width r || s form, is
// valid for the public key over the message.
func (pk PublicKey) Verify(message, sig []byte) error {
	parsed, err := ecdsa.ParseSignature(Curve, sig)
	if err != nil {
		return signature.ErrVerification
	}
	return pk.VerifyingKey().Verify(message, parsed)
}
