package escrow

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
)

const (
	cidV0Length = 46

	multibaseBase16      = 'f'
	multibaseBase16Upper = 'F'
	multibaseBase32      = 'b'
	multibaseBase32Upper = 'B'
	multibaseBase36      = 'k'
	multibaseBase36Upper = 'K'
	multibaseBase58      = 'z'

	sha256Code       = 0x12
	sha256DigestSize = 0x20
)

// validCID checks content identifier syntax. CIDv0 and CIDv1 in base16,
// base32, base36 (either case) or base58btc multibase encoding are accepted.
func validCID(cid string) bool {
	if len(cid) == 0 {
		return false
	}

	if len(cid) == cidV0Length && cid[0] == 'Q' && cid[1] == 'm' {
		if !isBase58(cid) {
			return false
		}
		mh := std.Base58Decode([]byte(cid))
		return len(mh) == 2+sha256DigestSize && mh[0] == sha256Code && mh[1] == sha256DigestSize
	}

	var raw []byte
	switch cid[0] {
	case multibaseBase16:
		raw = decodeBase16(cid[1:], false)
	case multibaseBase16Upper:
		raw = decodeBase16(cid[1:], true)
	case multibaseBase32:
		raw = decodeBase32(cid[1:], false)
	case multibaseBase32Upper:
		raw = decodeBase32(cid[1:], true)
	case multibaseBase36:
		raw = decodeBase36(cid[1:], false)
	case multibaseBase36Upper:
		raw = decodeBase36(cid[1:], true)
	case multibaseBase58:
		if !isBase58(cid[1:]) {
			return false
		}
		raw = std.Base58Decode([]byte(cid[1:]))
	default:
		return false
	}
	if len(raw) == 0 {
		return false
	}

	version, off := readUvarint(raw, 0)
	if off < 0 || version != 1 {
		return false
	}
	_, off = readUvarint(raw, off) // codec
	if off < 0 {
		return false
	}
	_, off = readUvarint(raw, off) // multihash function
	if off < 0 {
		return false
	}
	size, off := readUvarint(raw, off)
	if off < 0 {
		return false
	}
	return off+size == len(raw)
}

func isBase58(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '1' && c <= '9':
		case c >= 'A' && c <= 'H':
		case c >= 'J' && c <= 'N':
		case c >= 'P' && c <= 'Z':
		case c >= 'a' && c <= 'k':
		case c >= 'm' && c <= 'z':
		default:
			return false
		}
	}
	return true
}

// decodeBase16 decodes hex of a single case. It returns nil on invalid input.
func decodeBase16(s string, upper bool) []byte {
	if len(s) == 0 || len(s)%2 != 0 {
		return nil
	}

	res := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi := digitValue(s[i], 16, upper)
		lo := digitValue(s[i+1], 16, upper)
		if hi < 0 || lo < 0 {
			return nil
		}
		res[i/2] = byte(hi<<4 | lo)
	}
	return res
}

// decodeBase32 decodes unpadded RFC 4648 base32 of a single case. It
// returns nil on invalid input.
func decodeBase32(s string, upper bool) []byte {
	rem := len(s) % 8
	if len(s) == 0 || rem == 1 || rem == 3 || rem == 6 {
		return nil
	}

	var (
		res  = make([]byte, len(s)*5/8)
		acc  int
		bits int
		j    int
	)
	for i := 0; i < len(s); i++ {
		v := base32Value(s[i], upper)
		if v < 0 {
			return nil
		}
		acc = (acc<<5 | v) & 0x1fff
		bits += 5
		if bits >= 8 {
			bits -= 8
			res[j] = byte((acc >> bits) & 0xff)
			j++
		}
	}
	return res
}

func base32Value(c byte, upper bool) int {
	first := byte('a')
	if upper {
		first = 'A'
	}
	if c >= first && c <= first+25 {
		return int(c - first)
	}
	if c >= '2' && c <= '7' {
		return int(c-'2') + 26
	}
	return -1
}

// decodeBase36 decodes base36 of a single case, every leading '0' is a zero
// byte. It returns nil on invalid input.
func decodeBase36(s string, upper bool) []byte {
	n := len(s)
	if n == 0 {
		return nil
	}

	zeros := 0
	for zeros < n && s[zeros] == '0' {
		zeros++
	}

	// Big-endian number occupies the last size bytes of buf.
	var (
		buf  = make([]byte, n)
		size int
	)
	for i := zeros; i < n; i++ {
		carry := digitValue(s[i], 36, upper)
		if carry < 0 {
			return nil
		}
		for j := n - 1; j >= n-size; j-- {
			carry = carry + int(buf[j])*36
			buf[j] = byte(carry & 0xff)
			carry = carry >> 8
		}
		for carry > 0 {
			size++
			buf[n-size] = byte(carry & 0xff)
			carry = carry >> 8
		}
	}

	res := make([]byte, zeros+size)
	for k := 0; k < size; k++ {
		res[zeros+k] = buf[n-size+k]
	}
	return res
}

// digitValue returns value of the digit in base up to 36 or -1.
func digitValue(c byte, base int, upper bool) int {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case !upper && c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case upper && c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return -1
	}
	if v >= base {
		return -1
	}
	return v
}

// readUvarint reads unsigned varint from b starting at off. It returns the
// value and the offset of the next byte or -1 offset on malformed input.
func readUvarint(b []byte, off int) (int, int) {
	var (
		x     int
		shift int
	)
	for i := 0; i < 9; i++ {
		if off >= len(b) {
			return 0, -1
		}
		c := int(b[off])
		off++
		if c < 0x80 {
			return x | c<<shift, off
		}
		x = x | (c&0x7f)<<shift
		shift += 7
	}
	return 0, -1
}
