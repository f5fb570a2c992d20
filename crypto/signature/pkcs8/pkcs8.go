// Package pkcs8 decodes standard public key containers into verifying
// keys.
//
// The core verification packages carry no dependency on this package; link
// it only when SPKI or PEM input has to be supported.
package pkcs8

import (
	cryptoecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"

	"github.com/lispc/signatures/crypto/signature"
	"github.com/lispc/signatures/crypto/signature/ecdsa"
	"github.com/lispc/signatures/crypto/signature/p256"
)

const pemPublicKeyType = "PUBLIC KEY"

// ParsePublicKeyDER parses a DER-encoded SubjectPublicKeyInfo structure
// into a verifying key. Only elliptic-curve keys on supported curves are
// accepted.
func ParsePublicKeyDER(der []byte) (*ecdsa.VerifyingKey, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, signature.ErrVerification
	}

	ecPub, ok := pub.(*cryptoecdsa.PublicKey)
	if !ok || ecPub.Curve != elliptic.P256() {
		return nil, signature.ErrVerification
	}
	return p256.NewVerifyingKey(elliptic.MarshalCompressed(elliptic.P256(), ecPub.X, ecPub.Y))
}

// ParsePublicKeyPEM parses a PEM "PUBLIC KEY" block into a verifying key.
func ParsePublicKeyPEM(data []byte) (*ecdsa.VerifyingKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != pemPublicKeyType {
		return nil, signature.ErrVerification
	}
	return ParsePublicKeyDER(block.Bytes)
}
