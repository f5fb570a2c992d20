package ecdsa

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lispc/signatures/crypto/signature"
)

// fakeCurve is a toy curve with two-byte field elements. Its "curve
// equation" is y = x: an uncompressed point is on the curve iff both
// coordinates match, and decompression recovers y from x directly. A
// signature is valid iff r equals the digest and s equals the point's x
// coordinate.
type fakeCurve struct{}

func (fakeCurve) Name() string {
	return "fake"
}

func (fakeCurve) FieldSize() int {
	return 2
}

func (fakeCurve) Digest(message []byte) []byte {
	h := sha256.Sum256(message)
	return h[:2]
}

func (c fakeCurve) DecodePoint(data []byte) (Point, error) {
	ep, err := ParseEncodedPoint(c.FieldSize(), data)
	if err != nil {
		return nil, err
	}
	if !ep.IsCompressed() && !bytes.Equal(ep.X(), ep.Y()) {
		return nil, signature.ErrVerification
	}
	return fakePoint{x: [2]byte{ep.X()[0], ep.X()[1]}}, nil
}

func (fakeCurve) Verify(p Point, digest []byte, sig *Signature) bool {
	pt, ok := p.(fakePoint)
	if !ok {
		return false
	}
	return bytes.Equal(sig.R(), digest) && bytes.Equal(sig.S(), pt.x[:])
}

type fakePoint struct {
	x [2]byte
}

func (p fakePoint) Encode(compress bool) []byte {
	if compress {
		return []byte{0x02, p.x[0], p.x[1]}
	}
	return []byte{0x04, p.x[0], p.x[1], p.x[0], p.x[1]}
}

func TestParseEncodedPoint(t *testing.T) {
	require := require.New(t)

	ep, err := ParseEncodedPoint(2, []byte{0x02, 0xab, 0xcd})
	require.NoError(err, "compressed even")
	require.True(ep.IsCompressed())
	require.Equal([]byte{0xab, 0xcd}, ep.X())
	require.Nil(ep.Y())
	require.Equal([]byte{0x02, 0xab, 0xcd}, ep.Bytes())

	ep, err = ParseEncodedPoint(2, []byte{0x03, 0xab, 0xcd})
	require.NoError(err, "compressed odd")
	require.True(ep.IsCompressed())

	ep, err = ParseEncodedPoint(2, []byte{0x04, 0xab, 0xcd, 0xab, 0xcd})
	require.NoError(err, "uncompressed")
	require.False(ep.IsCompressed())
	require.Equal([]byte{0xab, 0xcd}, ep.X())
	require.Equal([]byte{0xab, 0xcd}, ep.Y())
	require.Equal([]byte{0x04, 0xab, 0xcd, 0xab, 0xcd}, ep.Bytes())

	for _, data := range [][]byte{
		nil,
		{},
		{0x02},
		{0x02, 0xab},
		{0x02, 0xab, 0xcd, 0xef},
		{0x04, 0xab, 0xcd},
		{0x04, 0xab, 0xcd, 0xab},
		{0x04, 0xab, 0xcd, 0xab, 0xcd, 0xee},
		{0x05, 0xab, 0xcd},
		{0x00, 0xab, 0xcd},
	} {
		_, err = ParseEncodedPoint(2, data)
		require.ErrorIs(err, signature.ErrVerification, "malformed encoding %x", data)
	}
}

func TestVerifyingKeyRoundTrip(t *testing.T) {
	require := require.New(t)

	vk, err := NewVerifyingKey(fakeCurve{}, []byte{0x02, 0xab, 0xcd})
	require.NoError(err, "NewVerifyingKey compressed")

	vk2, err := NewVerifyingKey(fakeCurve{}, vk.EncodedPoint(true))
	require.NoError(err, "decode of compressed encoding")
	require.True(vk.Equal(vk2))

	vk3, err := NewVerifyingKey(fakeCurve{}, vk.EncodedPoint(false))
	require.NoError(err, "decode of uncompressed encoding")
	require.True(vk.Equal(vk3))
	require.True(vk2.Equal(vk3))

	other, err := NewVerifyingKey(fakeCurve{}, []byte{0x02, 0xab, 0xce})
	require.NoError(err)
	require.False(vk.Equal(other))

	// Off-curve point.
	_, err = NewVerifyingKey(fakeCurve{}, []byte{0x04, 0xab, 0xcd, 0xab, 0xce})
	require.ErrorIs(err, signature.ErrVerification)

	// Equality with nil operands.
	require.False(vk.Equal(nil))
	require.True((*VerifyingKey)(nil).Equal(nil))
}

func TestVerifyingKeyFromPoint(t *testing.T) {
	require := require.New(t)

	ep, err := ParseEncodedPoint(2, []byte{0x04, 0xab, 0xcd, 0xab, 0xcd})
	require.NoError(err)

	vk, err := NewVerifyingKeyFromPoint(fakeCurve{}, ep)
	require.NoError(err, "NewVerifyingKeyFromPoint")
	require.Equal("fake", vk.Curve().Name())

	// Parses fine, but is not on the curve.
	ep, err = ParseEncodedPoint(2, []byte{0x04, 0xab, 0xcd, 0xab, 0xce})
	require.NoError(err)
	_, err = NewVerifyingKeyFromPoint(fakeCurve{}, ep)
	require.ErrorIs(err, signature.ErrVerification)

	_, err = NewVerifyingKeyFromPoint(fakeCurve{}, nil)
	require.ErrorIs(err, signature.ErrVerification)

	// FromPoint is the lossless inverse of Point.
	vk2 := FromPoint(fakeCurve{}, vk.Point())
	require.True(vk.Equal(vk2))
}

func TestVerifyProtocol(t *testing.T) {
	require := require.New(t)

	vk, err := NewVerifyingKey(fakeCurve{}, []byte{0x02, 0xab, 0xcd})
	require.NoError(err)

	message := []byte("attack at dawn")
	digest := fakeCurve{}.Digest(message)

	good, err := NewSignature(digest, []byte{0xab, 0xcd})
	require.NoError(err)
	require.NoError(vk.Verify(message, good), "valid signature verifies")
	require.NoError(vk.VerifyDigest(digest, good), "valid signature verifies by digest")

	require.ErrorIs(vk.Verify([]byte("attack at dusk"), good), signature.ErrVerification,
		"different message fails")

	bad, err := NewSignature(digest, []byte{0xab, 0xce})
	require.NoError(err)
	require.ErrorIs(vk.Verify(message, bad), signature.ErrVerification, "wrong signature fails")

	// Signature with the wrong component width for the curve.
	wide, err := NewSignature([]byte{1, 2, 3}, []byte{4, 5, 6})
	require.NoError(err)
	require.ErrorIs(vk.Verify(message, wide), signature.ErrVerification)

	require.ErrorIs(vk.Verify(message, nil), signature.ErrVerification)

	// Malformed and wrong signatures are indistinguishable.
	_, malformedErr := ParseSignature(fakeCurve{}, []byte{1, 2, 3})
	wrongErr := vk.Verify(message, bad)
	require.Equal(malformedErr, wrongErr)
}

func TestSignatureCodec(t *testing.T) {
	require := require.New(t)

	_, err := NewSignature(nil, nil)
	require.ErrorIs(err, signature.ErrVerification, "empty components")
	_, err = NewSignature([]byte{1, 2}, []byte{3})
	require.ErrorIs(err, signature.ErrVerification, "mismatched components")

	sig, err := ParseSignature(fakeCurve{}, []byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(err, "ParseSignature")
	require.Equal([]byte{0xde, 0xad}, sig.R())
	require.Equal([]byte{0xbe, 0xef}, sig.S())
	require.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, sig.Bytes())

	_, err = ParseSignature(fakeCurve{}, []byte{0xde, 0xad, 0xbe})
	require.ErrorIs(err, signature.ErrVerification, "short input")
	_, err = ParseSignature(fakeCurve{}, []byte{0xde, 0xad, 0xbe, 0xef, 0x00})
	require.ErrorIs(err, signature.ErrVerification, "long input")

	// The components are copied on construction.
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	sig2, err := ParseSignature(fakeCurve{}, raw)
	require.NoError(err)
	raw[0] = 0x00
	require.True(sig.Equal(sig2))
}

func TestSignatureHex(t *testing.T) {
	require := require.New(t)

	sig, err := ParseSignatureHex(fakeCurve{}, "deadbeef")
	require.NoError(err, "lowercase decodes")
	require.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, sig.Bytes())

	upper, err := ParseSignatureHex(fakeCurve{}, "DEADBEEF")
	require.NoError(err, "uppercase decodes")
	require.True(sig.Equal(upper))

	_, err = ParseSignatureHex(fakeCurve{}, "DeadBeef")
	require.ErrorIs(err, signature.ErrVerification, "mixed case is rejected")
	_, err = ParseSignatureHex(fakeCurve{}, "deadbee")
	require.ErrorIs(err, signature.ErrVerification, "wrong length is rejected")
	_, err = ParseSignatureHex(fakeCurve{}, "deadbeefde")
	require.ErrorIs(err, signature.ErrVerification, "wrong length is rejected")
	_, err = ParseSignatureHex(fakeCurve{}, "deadbeeg")
	require.ErrorIs(err, signature.ErrVerification, "non-hex letter is rejected")

	digits, err := ParseSignatureHex(fakeCurve{}, "01234567")
	require.NoError(err, "all-digit text decodes")
	require.Equal([]byte{0x01, 0x23, 0x45, 0x67}, digits.Bytes())

	require.Equal("deadbeef", sig.String())
	require.Equal("deadbeef", fmt.Sprintf("%x", sig))
	require.Equal("DEADBEEF", fmt.Sprintf("%X", sig))
	require.Equal("deadbeef", fmt.Sprintf("%v", sig))

	// Encode/decode round trips in both casings.
	for _, text := range []string{fmt.Sprintf("%x", sig), fmt.Sprintf("%X", sig)} {
		parsed, err := ParseSignatureHex(fakeCurve{}, text)
		require.NoError(err)
		require.True(sig.Equal(parsed))
	}
}
