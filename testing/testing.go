// Package testing provides deterministic keys with canned signature
// fixtures for use in tests.
package testing

import (
	cryptoecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	ed448circl "github.com/cloudflare/circl/sign/ed448"
	ed25519voi "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	sr25519voi "github.com/oasisprotocol/curve25519-voi/primitives/sr25519"

	"github.com/lispc/signatures/crypto/signature"
	"github.com/lispc/signatures/crypto/signature/ecdsa"
	"github.com/lispc/signatures/crypto/signature/ed25519"
	"github.com/lispc/signatures/crypto/signature/ed448"
	"github.com/lispc/signatures/crypto/signature/p256"
	"github.com/lispc/signatures/crypto/signature/secp256k1"
	"github.com/lispc/signatures/crypto/signature/sr25519"
)

// TestKey is a key with a canned signature fixture used for testing.
type TestKey struct {
	// PublicKey is the public half of the key.
	PublicKey signature.PublicKey

	// VerifyingKey is the generic ECDSA form of the key, or nil for
	// non-ECDSA schemes.
	VerifyingKey *ecdsa.VerifyingKey

	// Message is a message signed by the key.
	Message []byte

	// Signature is the fixed-width serialized signature over Message.
	Signature []byte
}

func newEd25519TestKey(seed string) TestKey {
	sk := sha512.Sum512_256([]byte(seed))
	priv := ed25519voi.NewKeyFromSeed(sk[:])

	msg := []byte("ed25519 test message")
	sig := ed25519voi.Sign(priv, msg)

	var pk ed25519.PublicKey
	if err := pk.UnmarshalBinary(priv.Public().(ed25519voi.PublicKey)); err != nil {
		panic(err)
	}
	return TestKey{
		PublicKey: pk,
		Message:   msg,
		Signature: sig,
	}
}

func newEd448TestKey(seed string) TestKey {
	sk := sha512.Sum512([]byte(seed))
	priv := ed448circl.NewKeyFromSeed(sk[:ed448circl.SeedSize])

	msg := []byte("ed448 test message")
	sig := ed448circl.Sign(priv, msg, "")

	var pk ed448.PublicKey
	if err := pk.UnmarshalBinary(priv.Public().(ed448circl.PublicKey)); err != nil {
		panic(err)
	}
	return TestKey{
		PublicKey: pk,
		Message:   msg,
		Signature: sig,
	}
}

func newSecp256k1TestKey(seed string) TestKey {
	sk := sha512.Sum512_256([]byte(seed))
	priv, pub := btcec.PrivKeyFromBytes(sk[:])

	msg := []byte("secp256k1 test message")
	digest := sha256.Sum256(msg)
	der := btcecdsa.Sign(priv, digest[:]).Serialize()

	var parsed struct{ R, S *big.Int }
	if _, err := asn1.Unmarshal(der, &parsed); err != nil {
		panic(err)
	}
	sig := make([]byte, 64)
	parsed.R.FillBytes(sig[:32])
	parsed.S.FillBytes(sig[32:])

	var pk secp256k1.PublicKey
	if err := pk.UnmarshalBinary(pub.SerializeCompressed()); err != nil {
		panic(err)
	}
	return TestKey{
		PublicKey:    pk,
		VerifyingKey: pk.VerifyingKey(),
		Message:      msg,
		Signature:    sig,
	}
}

func newP256TestKey(seed string) TestKey {
	sk := sha512.Sum512_256([]byte(seed))
	params := elliptic.P256().Params()

	// Map the seed onto a scalar in [1, N-1].
	d := new(big.Int).SetBytes(sk[:])
	d.Mod(d, new(big.Int).Sub(params.N, big.NewInt(1)))
	d.Add(d, big.NewInt(1))

	priv := &cryptoecdsa.PrivateKey{D: d}
	priv.Curve = elliptic.P256()
	priv.X, priv.Y = params.ScalarBaseMult(d.Bytes())

	msg := []byte("p256 test message")
	digest := sha256.Sum256(msg)
	r, s, err := cryptoecdsa.Sign(rand.Reader, priv, digest[:])
	if err != nil {
		panic(err)
	}
	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])

	pk := p256.PublicKey(priv.PublicKey)
	return TestKey{
		PublicKey:    pk,
		VerifyingKey: pk.VerifyingKey(),
		Message:      msg,
		Signature:    sig,
	}
}

func newSr25519TestKey(seed string) TestKey {
	msk := sr25519voi.MiniSecretKey(sha512.Sum512_256([]byte(seed)))
	kp := msk.ExpandEd25519().KeyPair()

	msg := []byte("sr25519 test message")

	// The transcript construction must match the sr25519 package's
	// verification side.
	h := sha512.New512_256()
	_, _ = h.Write(msg)
	transcript := sr25519voi.NewSigningContext(nil).NewTranscriptHash(h)

	srSig, err := kp.Sign(nil, transcript)
	if err != nil {
		panic(err)
	}
	sig, err := srSig.MarshalBinary()
	if err != nil {
		panic(err)
	}

	pkBinary, err := kp.PublicKey().MarshalBinary()
	if err != nil {
		panic(err)
	}
	var pk sr25519.PublicKey
	if err = pk.UnmarshalBinary(pkBinary); err != nil {
		panic(err)
	}
	return TestKey{
		PublicKey: pk,
		Message:   msg,
		Signature: sig,
	}
}

var (
	// Alice is an Ed25519 test key.
	Alice = newEd25519TestKey("signatures/test-keys: alice")
	// Bob is a secp256k1 test key.
	Bob = newSecp256k1TestKey("signatures/test-keys: bob")
	// Charlie is a P-256 test key.
	Charlie = newP256TestKey("signatures/test-keys: charlie")
	// Dave is an Ed448 test key.
	Dave = newEd448TestKey("signatures/test-keys: dave")
	// Erin is an Sr25519 test key.
	Erin = newSr25519TestKey("signatures/test-keys: erin")

	// TestKeys contains all test keys.
	TestKeys = map[string]TestKey{
		"alice":   Alice,
		"bob":     Bob,
		"charlie": Charlie,
		"dave":    Dave,
		"erin":    Erin,
	}
)
