package signature

import "encoding/hex"

const (
	lowerHexTable = "0123456789abcdef"
	upperHexTable = "0123456789ABCDEF"
)

// EncodeHex encodes the concatenated components as hexadecimal text, two
// digits per byte with no separators or prefix. upper selects the 0-9A-F
// alphabet; otherwise 0-9a-f is used.
func EncodeHex(upper bool, components ...[]byte) string {
	table := lowerHexTable
	if upper {
		table = upperHexTable
	}

	var n int
	for _, c := range components {
		n += len(c)
	}

	out := make([]byte, 0, 2*n)
	for _, c := range components {
		for _, b := range c {
			out = append(out, table[b>>4], table[b&0x0f])
		}
	}
	return string(out)
}

// DecodeHex decodes fixed-width hexadecimal text into dst.
//
// The text must be exactly 2*len(dst) bytes long and use a uniform letter
// case: all-lowercase and all-uppercase inputs are both accepted, mixed case
// is rejected. Digits 0-9 are case-neutral. Returns ErrVerification on any
// violation; dst contents are unspecified after a failed decode.
func DecodeHex(dst []byte, text string) error {
	if len(text) != 2*len(dst) {
		return ErrVerification
	}

	// Case uniformity is checked in a dedicated pre-pass so the policy
	// stays a single explicit rule, independent of the numeric parse below.
	var sawLower, sawUpper bool
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
			if sawUpper {
				return ErrVerification
			}
			sawLower = true
		case c >= 'A' && c <= 'Z':
			if sawLower {
				return ErrVerification
			}
			sawUpper = true
		default:
			return ErrVerification
		}
	}

	// Letters outside a-f/A-F pass the scan above and are rejected here by
	// the pairwise base-16 parse.
	if _, err := hex.Decode(dst, []byte(text)); err != nil {
		return ErrVerification
	}
	return nil
}
