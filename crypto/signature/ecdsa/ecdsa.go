// Package ecdsa provides curve-generic ECDSA signature verification.
//
// The package is parametrized over the Curve interface: a concrete curve
// supplies the point codec, the canonical message digest and the curve
// verification primitive, while this package owns key construction,
// serialization and the verification protocol. See the p256 and secp256k1
// packages for concrete curves.
package ecdsa

import (
	"bytes"

	"github.com/lispc/signatures/crypto/signature"
)

// Point is a validated affine curve point.
type Point interface {
	// Encode returns the deterministic SEC1 encoding of the point:
	// compressed (0x02/0x03 tag + x coordinate) or uncompressed
	// (0x04 tag + x + y coordinates).
	Encode(compress bool) []byte
}

// Curve is the capability interface a concrete curve provides to this
// package. Implementations must be stateless and safe for concurrent use.
type Curve interface {
	// Name returns the canonical curve name.
	Name() string

	// FieldSize returns the byte size of field elements. Scalars, signature
	// components and the canonical digest all share this width.
	FieldSize() int

	// DecodePoint parses a SEC1-encoded point, rejecting anything that does
	// not name a valid affine point on the curve.
	DecodePoint(data []byte) (Point, error)

	// Digest computes the canonical one-shot hash of a message. The output
	// is FieldSize bytes wide.
	Digest(message []byte) []byte

	// Verify reports whether the signature is valid for the digest under
	// the given point.
	Verify(point Point, digest []byte, sig *Signature) bool
}

// SEC1 point encoding tags.
const (
	tagCompressedEven = 0x02
	tagCompressedOdd  = 0x03
	tagUncompressed   = 0x04
)

// EncodedPoint is a parsed SEC1 point encoding. Parsing checks only the tag
// and coordinate widths; whether the coordinates name a point on a curve is
// decided at VerifyingKey construction.
type EncodedPoint struct {
	tag byte
	x   []byte
	y   []byte
}

// ParseEncodedPoint parses a SEC1 tagged encoding with fieldSize-byte
// coordinates.
func ParseEncodedPoint(fieldSize int, data []byte) (*EncodedPoint, error) {
	if fieldSize <= 0 || len(data) < 1 {
		return nil, signature.ErrVerification
	}

	tag, rest := data[0], data[1:]
	switch tag {
	case tagCompressedEven, tagCompressedOdd:
		if len(rest) != fieldSize {
			return nil, signature.ErrVerification
		}
		return &EncodedPoint{tag: tag, x: append([]byte(nil), rest...)}, nil
	case tagUncompressed:
		if len(rest) != 2*fieldSize {
			return nil, signature.ErrVerification
		}
		return &EncodedPoint{
			tag: tag,
			x:   append([]byte(nil), rest[:fieldSize]...),
			y:   append([]byte(nil), rest[fieldSize:]...),
		}, nil
	default:
		return nil, signature.ErrVerification
	}
}

// IsCompressed returns true iff the encoding uses point compression.
func (ep *EncodedPoint) IsCompressed() bool {
	return ep.tag != tagUncompressed
}

// X returns the encoded x coordinate.
func (ep *EncodedPoint) X() []byte {
	return ep.x
}

// Y returns the encoded y coordinate, or nil for a compressed encoding.
func (ep *EncodedPoint) Y() []byte {
	return ep.y
}

// Bytes returns the SEC1 tagged byte form of the encoding.
func (ep *EncodedPoint) Bytes() []byte {
	out := make([]byte, 0, 1+len(ep.x)+len(ep.y))
	out = append(out, ep.tag)
	out = append(out, ep.x...)
	out = append(out, ep.y...)
	return out
}

// VerifyingKey is an ECDSA public key used for signature verification.
//
// The key's point is immutable after construction, so values may be shared
// freely between concurrent verifiers.
type VerifyingKey struct {
	curve Curve
	point Point
}

// NewVerifyingKey initializes a VerifyingKey from a SEC1-encoded public
// key, compressed or uncompressed.
func NewVerifyingKey(curve Curve, data []byte) (*VerifyingKey, error) {
	point, err := curve.DecodePoint(data)
	if err != nil {
		return nil, signature.ErrVerification
	}
	return &VerifyingKey{curve: curve, point: point}, nil
}

// NewVerifyingKeyFromPoint initializes a VerifyingKey from a parsed point
// encoding, failing if it does not name a valid point on the curve.
func NewVerifyingKeyFromPoint(curve Curve, ep *EncodedPoint) (*VerifyingKey, error) {
	if ep == nil {
		return nil, signature.ErrVerification
	}
	return NewVerifyingKey(curve, ep.Bytes())
}

// FromPoint wraps an affine point already validated for the curve into a
// VerifyingKey. It is the lossless inverse of Point and cannot fail.
func FromPoint(curve Curve, point Point) *VerifyingKey {
	return &VerifyingKey{curve: curve, point: point}
}

// Curve returns the curve the key verifies under.
func (vk *VerifyingKey) Curve() Curve {
	return vk.curve
}

// Point returns the key's affine point.
func (vk *VerifyingKey) Point() Point {
	return vk.point
}

// EncodedPoint serializes the key's point, optionally applying point
// compression.
func (vk *VerifyingKey) EncodedPoint(compress bool) []byte {
	return vk.point.Encode(compress)
}

// Equal compares vs another verifying key for equality. Two keys are equal
// iff their canonical affine point encodings are equal.
func (vk *VerifyingKey) Equal(other *VerifyingKey) bool {
	if vk == nil || other == nil {
		return vk == other
	}
	return vk.curve.Name() == other.curve.Name() &&
		bytes.Equal(vk.point.Encode(false), other.point.Encode(false))
}

// VerifyDigest verifies a signature over a digest already computed over the
// message. The digest must be the curve's canonical hash of the full
// message, FieldSize bytes wide.
//
// A malformed signature and a cryptographically wrong signature are
// deliberately indistinguishable in the returned error.
func (vk *VerifyingKey) VerifyDigest(digest []byte, sig *Signature) error {
	if sig == nil || len(sig.r) != vk.curve.FieldSize() {
		return signature.ErrVerification
	}
	if !vk.curve.Verify(vk.point, digest, sig) {
		return signature.ErrVerification
	}
	return nil
}

// Verify computes the curve's canonical digest of the message and verifies
// the signature against it.
func (vk *VerifyingKey) Verify(message []byte, sig *Signature) error {
	return vk.VerifyDigest(vk.curve.Digest(message), sig)
}
