package wire

import (
	"fmt"
	"math/bits"
)

// VarintSize returns the number of bytes EncodeVarint(v) produces: 1 byte
// for v < 2^7, a unary-prefixed form of 2-8 bytes for v < 2^56, and 9
// bytes (a 0xFF marker plus 8 raw bytes) otherwise.
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<56:
		l := (bits.Len64(v) - 1) / 7
		return l + 1
	default:
		return 9
	}
}

// AppendVarint appends the varint encoding of v to buf and returns the
// extended slice.
func AppendVarint(buf []byte, v uint64) []byte {
	var tmp [9]byte
	n := EncodeVarintInto(v, tmp[:])
	return append(buf, tmp[:n]...)
}

// EncodeVarintInto writes the varint encoding of v to buf[:] and returns
// the number of bytes written. buf must have at least VarintSize(v)
// bytes.
func EncodeVarintInto(v uint64, buf []byte) int {
	switch {
	case v < 1<<7:
		buf[0] = byte(v)
		return 1

	case v < 1<<56:
		l := (bits.Len64(v) - 1) / 7 // 1..7
		high := v >> (8 * uint(l))
		buf[0] = byte((256 - (1 << uint(8-l))) + int(high))
		rest := v & ((uint64(1) << uint(8*l)) - 1)
		putUintLE(buf[1:], l, rest)
		return l + 1

	default:
		buf[0] = 0xFF
		putUintLE(buf[1:], 8, v)
		return 9
	}
}

// DecodeVarintFrom parses a varint at buf[offset:] and returns the value
// and the number of bytes consumed.
//
// Non-minimal encodings are rejected with ErrMalformed: the scheme is
// canonical (every value has exactly one encoding) so a decoder that
// reproduces a different byte count than VarintSize(value) has been
// handed a form this codec never produces.
func DecodeVarintFrom(buf []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset >= len(buf) {
		return 0, 0, fmt.Errorf("%w: varint: no tag byte at offset %d", ErrBufferTooSmall, offset)
	}
	t := buf[offset]

	var value uint64
	var size int

	switch {
	case t < 0x80:
		value, size = uint64(t), 1

	case t == 0xFF:
		if offset+9 > len(buf) {
			return 0, 0, fmt.Errorf("%w: varint: need 9 bytes, have %d", ErrBufferTooSmall, len(buf)-offset)
		}
		value, size = getUintLE(buf[offset+1:], 8), 9

	default:
		l := bits.LeadingZeros8(^t) // length of the leading run of 1 bits, in [1,7]
		if offset+1+l > len(buf) {
			return 0, 0, fmt.Errorf("%w: varint: need %d bytes, have %d", ErrBufferTooSmall, 1+l, len(buf)-offset)
		}
		high := int64(t) + (int64(1) << uint(8-l)) - 256
		value = (uint64(high) << uint(8*l)) | getUintLE(buf[offset+1:], l)
		size = l + 1
	}

	if got := VarintSize(value); got != size {
		return 0, 0, fmt.Errorf("%w: varint: non-canonical encoding (value %d encodes in %d bytes, saw %d)", ErrMalformed, value, got, size)
	}
	return value, size, nil
}

// Varint implements Codec[uint64] using the variable-length integer
// scheme: the length-prefix / compact-number encoding used throughout
// this package for counts and discriminators.
type Varint struct{}

func (Varint) EncodedSize(v uint64) int { return VarintSize(v) }

func (Varint) Encode(v uint64) ([]byte, error) {
	buf := make([]byte, VarintSize(v))
	EncodeVarintInto(v, buf)
	return buf, nil
}

func (Varint) EncodeInto(v uint64, buf []byte, offset int) (int, error) {
	n := VarintSize(v)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: varint needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	return EncodeVarintInto(v, buf[offset:]), nil
}

func (Varint) Decode(buf []byte) (uint64, error) {
	v, _, err := DecodeVarintFrom(buf, 0)
	return v, err
}

func (Varint) DecodeFrom(buf []byte, offset int) (uint64, int, error) {
	return DecodeVarintFrom(buf, offset)
}

func (Varint) ToJSON(v uint64) (any, error) { return v, nil }

func (Varint) FromJSON(j any) (uint64, error) {
	return jsonToUint64(j)
}
