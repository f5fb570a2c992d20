package ed25519

import (
	"crypto/rand"
	"fmt"
	"testing"

	voi "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/require"

	"github.com/lispc/signatures/crypto/signature"
)

func newTestKey(t *testing.T, message []byte) (PublicKey, []byte) {
	require := require.New(t)

	pub, priv, err := voi.GenerateKey(rand.Reader)
	require.NoError(err, "GenerateKey")

	var pk PublicKey
	require.NoError(pk.UnmarshalBinary(pub), "UnmarshalBinary")

	return pk, voi.Sign(priv, message)
}

func TestEd25519Verify(t *testing.T) {
	require := require.New(t)

	message := []byte("ed25519 message")
	pk, raw := newTestKey(t, message)

	require.NoError(pk.Verify(message, raw), "valid signature verifies")
	require.ErrorIs(pk.Verify([]byte("other message"), raw), signature.ErrVerification)
	require.ErrorIs(pk.Verify(message, []byte("asdfghjkl")), signature.ErrVerification)
	require.ErrorIs(pk.Verify(message, nil), signature.ErrVerification)

	for i := range raw {
		raw[i] ^= 0x01
		require.ErrorIs(pk.Verify(message, raw), signature.ErrVerification,
			"flipped byte %d", i)
		raw[i] ^= 0x01
	}

	sig, err := NewSignature(raw)
	require.NoError(err, "NewSignature")
	require.NoError(pk.VerifySignature(message, sig), "valid signature verifies")
	require.ErrorIs(pk.VerifySignature(message, nil), signature.ErrVerification)
}

func TestEd25519SignatureCodec(t *testing.T) {
	require := require.New(t)

	_, raw := newTestKey(t, []byte("x"))

	sig, err := NewSignature(raw)
	require.NoError(err, "NewSignature")
	require.Equal(raw, sig.Bytes())
	require.Equal(raw[:32], sig.R())
	require.Equal(raw[32:], sig.S())

	_, err = NewSignature(raw[:63])
	require.ErrorIs(err, signature.ErrVerification, "short signature")
	_, err = NewSignature(append(raw, 0x00))
	require.ErrorIs(err, signature.ErrVerification, "long signature")

	lower := fmt.Sprintf("%x", sig)
	upper := fmt.Sprintf("%X", sig)
	require.Len(lower, 2*SignatureSize)
	require.Equal(sig.String(), lower)

	fromLower, err := ParseSignatureHex(lower)
	require.NoError(err, "lowercase decodes")
	require.True(sig.Equal(fromLower))

	fromUpper, err := ParseSignatureHex(upper)
	require.NoError(err, "uppercase decodes")
	require.True(sig.Equal(fromUpper))

	// Mix a single character's case.
	mixed := []byte(lower)
	for i, c := range mixed {
		if c >= 'a' && c <= 'f' {
			mixed[i] = c - 'a' + 'A'
			break
		}
	}
	if string(mixed) != lower {
		_, err = ParseSignatureHex(string(mixed))
		require.ErrorIs(err, signature.ErrVerification, "mixed case is rejected")
	}

	_, err = ParseSignatureHex(lower[:126])
	require.ErrorIs(err, signature.ErrVerification, "wrong length is rejected")

	mtxt, err := sig.MarshalText()
	require.NoError(err, "MarshalText")
	require.Equal(lower, string(mtxt))

	var usig Signature
	require.NoError(usig.UnmarshalText(mtxt), "UnmarshalText")
	require.True(sig.Equal(&usig))
}

func TestEd25519Equal(t *testing.T) {
	require := require.New(t)

	pk1 := NewPublicKey("YgkEiVSR4SMQdfXw+ppuFYlqH0seutnCKk8KG8PyAx0=")
	pk2 := NewPublicKey("NcPzNW3YU2T+ugNUtUWtoQnRvbOL9dYSaBfbjHLP1pE=")
	pk3 := NewPublicKey("YgkEiVSR4SMQdfXw+ppuFYlqH0seutnCKk8KG8PyAx0=")

	require.True(pk1.Equal(pk1)) //nolint: gocritic
	require.True(pk1.Equal(pk3))
	require.True(pk3.Equal(pk1))
	require.False(pk1.Equal(pk2))
	require.False(pk2.Equal(pk3))
}

func TestEd25519PubKeySerDes(t *testing.T) {
	require := require.New(t)

	pk, _ := newTestKey(t, []byte("x"))

	mbin, err := pk.MarshalBinary()
	require.NoError(err, "MarshalBinary")
	require.Len(mbin, PublicKeySize)

	var upk PublicKey
	require.NoError(upk.UnmarshalBinary(mbin), "UnmarshalBinary")
	require.True(pk.Equal(upk))

	mtxt, err := pk.MarshalText()
	require.NoError(err, "MarshalText")

	var utpk PublicKey
	require.NoError(utpk.UnmarshalText(mtxt), "UnmarshalText")
	require.True(pk.Equal(utpk))
	require.Equal(pk.String(), string(mtxt))

	var x PublicKey
	require.Error(x.UnmarshalText([]byte("asdf")))
	require.Error(x.UnmarshalBinary([]byte("ghij")))
}
