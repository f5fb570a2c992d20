// Package types provides serializable wrappers over the signature types.
package types

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"

	"github.com/lispc/signatures/crypto/signature"
	"github.com/lispc/signatures/crypto/signature/ed25519"
	"github.com/lispc/signatures/crypto/signature/ed448"
	"github.com/lispc/signatures/crypto/signature/p256"
	"github.com/lispc/signatures/crypto/signature/secp256k1"
	"github.com/lispc/signatures/crypto/signature/sr25519"
)

var (
	_ json.Marshaler   = (*PublicKey)(nil)
	_ json.Unmarshaler = (*PublicKey)(nil)
	_ cbor.Marshaler   = (*PublicKey)(nil)
	_ cbor.Unmarshaler = (*PublicKey)(nil)
)

// PublicKey is a serializable public key. The serialized form is a
// single-entry structure tagged with the key scheme.
type PublicKey struct {
	signature.PublicKey
}

type serializedPublicKey struct {
	P256      *p256.PublicKey      `json:"p256,omitempty"`
	Secp256k1 *secp256k1.PublicKey `json:"secp256k1,omitempty"`
	Ed25519   *ed25519.PublicKey   `json:"ed25519,omitempty"`
	Ed448     *ed448.PublicKey     `json:"ed448,omitempty"`
	Sr25519   *sr25519.PublicKey   `json:"sr25519,omitempty"`
}

func (pk *PublicKey) unmarshal(spk *serializedPublicKey) error {
	var (
		decoded signature.PublicKey
		n       int
	)
	if spk.P256 != nil {
		decoded = *spk.P256
		n++
	}
	if spk.Secp256k1 != nil {
		decoded = *spk.Secp256k1
		n++
	}
	if spk.Ed25519 != nil {
		decoded = *spk.Ed25519
		n++
	}
	if spk.Ed448 != nil {
		decoded = *spk.Ed448
		n++
	}
	if spk.Sr25519 != nil {
		decoded = *spk.Sr25519
		n++
	}
	if n != 1 {
		return signature.ErrVerification
	}
	pk.PublicKey = decoded
	return nil
}

// MarshalCBOR encodes the public key as CBOR.
func (pk *PublicKey) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(pk.PublicKey)
}

// UnmarshalCBOR decodes the public key from CBOR.
func (pk *PublicKey) UnmarshalCBOR(data []byte) error {
	var spk serializedPublicKey
	if err := cbor.Unmarshal(data, &spk); err != nil {
		return err
	}
	return pk.unmarshal(&spk)
}

// MarshalJSON encodes the public key as JSON.
func (pk *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.PublicKey)
}

// UnmarshalJSON decodes the public key from JSON.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var spk serializedPublicKey
	if err := json.Unmarshal(data, &spk); err != nil {
		return err
	}
	return pk.unmarshal(&spk)
}
