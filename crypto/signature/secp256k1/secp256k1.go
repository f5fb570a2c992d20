// Package secp256k1 provides signature verification on the secp256k1
// curve.
package secp256k1

import (
	"crypto/sha256"
	"encoding"
	"encoding/base64"
	"encoding/json"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/fxamacker/cbor/v2"

	"github.com/lispc/signatures/crypto/signature"
	"github.com/lispc/signatures/crypto/signature/ecdsa"
)

// Curve is the secp256k1 instantiation of the generic ECDSA curve
// capability. Messages are digested with SHA-256.
var Curve ecdsa.Curve = curve{}

const fieldSize = 32

type curve struct{}

func (curve) Name() string {
	return "secp256k1"
}

func (curve) FieldSize() int {
	return fieldSize
}

func (curve) Digest(message []byte) []byte {
	h := sha256.Sum256(message)
	return h[:]
}

func (curve) DecodePoint(data []byte) (ecdsa.Point, error) {
	pk, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, signature.ErrVerification
	}
	return point{inner: pk}, nil
}

func (curve) Verify(p ecdsa.Point, digest []byte, sig *ecdsa.Signature) bool {
	pt, ok := p.(point)
	if !ok {
		return false
	}

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig.R()); overflow {
		return false
	}
	if overflow := s.SetByteSlice(sig.S()); overflow {
		return false
	}
	return btcecdsa.NewSignature(&r, &s).Verify(digest, pt.inner)
}

type point struct {
	inner *btcec.PublicKey
}

func (p point) Encode(compress bool) []byte {
	if compress {
		return p.inner.SerializeCompressed()
	}
	return p.inner.SerializeUncompressed()
}

// NewVerifyingKey initializes a secp256k1 verifying key from a SEC1-encoded
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

// PublicKey is a secp256k1 public key.
type PublicKey struct {
	inner *btcec.PublicKey
}

type serializedPublicKey struct {
	Secp256k1 []byte `json:"secp256k1"`
}

// FromVerifyingKey converts a generic verifying key back into a secp256k1
// public key. Returns false if the key is not a secp256k1 key.
func FromVerifyingKey(vk *ecdsa.VerifyingKey) (PublicKey, bool) {
	pt, ok := vk.Point().(point)
	if !ok {
		return PublicKey{}, false
	}
	return PublicKey{inner: pt.inner}, true
}

// VerifyingKey converts the public key into a generic verifying key. The
// conversion is lossless and cannot fail.
func (pk PublicKey) VerifyingKey() *ecdsa.VerifyingKey {
	return ecdsa.FromPoint(Curve, point{inner: pk.inner})
}

// MarshalCBOR encodes the public key as CBOR.
func (pk PublicKey) MarshalCBOR() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	return cbor.Marshal(serializedPublicKey{Secp256k1: b})
}

// MarshalJSON encodes the public key as JSON.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	b, _ := pk.MarshalBinary()
	return json.Marshal(serializedPublicKey{Secp256k1: b})
}

// MarshalBinary encodes a public key into compressed SEC1 binary form.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return pk.inner.SerializeCompressed(), nil
}

// UnmarshalBinary decodes a binary marshaled public key.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	parsed, err := btcec.ParsePubKey(data)
	if err != nil {
		return signature.ErrVerification
	}
	pk.inner = parsed
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
	return pk.inner.IsEqual(opk.inner)
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
