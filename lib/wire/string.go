package wire

import (
	"fmt"
	"unicode/utf8"
)

// String implements Codec[string]: a varint byte-length prefix (not a
// code-point count) followed by the UTF-8 bytes.
type String struct{}

func (String) EncodedSize(v string) int { return VarintSize(uint64(len(v))) + len(v) }

func (String) Encode(v string) ([]byte, error) {
	out := AppendVarint(make([]byte, 0, VarintSize(uint64(len(v)))+len(v)), uint64(len(v)))
	return append(out, v...), nil
}

func (String) EncodeInto(v string, buf []byte, offset int) (int, error) {
	n := VarintSize(uint64(len(v)))
	if offset+n+len(v) > len(buf) {
		return 0, fmt.Errorf("%w: string needs %d bytes at offset %d", ErrBufferTooSmall, n+len(v), offset)
	}
	written := EncodeVarintInto(uint64(len(v)), buf[offset:])
	copy(buf[offset+written:], v)
	return written + len(v), nil
}

func (String) Decode(buf []byte) (string, error) {
	v, _, err := String{}.DecodeFrom(buf, 0)
	return v, err
}

func (String) DecodeFrom(buf []byte, offset int) (string, int, error) {
	length, prefixSize, err := DecodeVarintFrom(buf, offset)
	if err != nil {
		return "", 0, err
	}
	start := offset + prefixSize
	end := start + int(length)
	if end > len(buf) || end < start {
		return "", 0, fmt.Errorf("%w: string needs %d payload bytes at offset %d", ErrBufferTooSmall, length, start)
	}
	if !utf8.Valid(buf[start:end]) {
		return "", 0, fmt.Errorf("%w: string payload is not valid UTF-8", ErrMalformed)
	}
	return string(buf[start:end]), prefixSize + int(length), nil
}

func (String) ToJSON(v string) (any, error) { return v, nil }

func (String) FromJSON(j any) (string, error) { return jsonToString(j) }
