package wire

import "fmt"

// FixedWidthUint is the capability interface a fast path looks for when
// deciding whether it can inline a fixed-width unsigned integer codec
// (e.g. inside [DictionaryCodec]'s key/value fast paths) instead of
// delegating to the generic per-element call. The pattern mirrors
// optional-interface fast paths elsewhere in the standard library (e.g.
// io.Copy probing for io.WriterTo/io.ReaderFrom): the fast path is
// discovered by a type assertion against a small marker interface, not
// by a type switch over every concrete codec type.
type FixedWidthUint[V any] interface {
	Codec[V]
	Width() int
	ToUint64(V) uint64
	FromUint64(uint64) V
}

func fixedWidthUint[V any](c Codec[V]) (FixedWidthUint[V], bool) {
	fw, ok := c.(FixedWidthUint[V])
	return fw, ok
}

func fixedUintEncodedSize(width int) int { return width }

func fixedUintEncodeInto(width int, v uint64, buf []byte, offset int) (int, error) {
	if offset+width > len(buf) {
		return 0, fmt.Errorf("%w: fixed uint%d needs %d bytes at offset %d", ErrBufferTooSmall, width*8, width, offset)
	}
	putUintLE(buf[offset:], width, v)
	return width, nil
}

func fixedUintDecodeFrom(width int, buf []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset+width > len(buf) {
		return 0, 0, fmt.Errorf("%w: fixed uint%d needs %d bytes at offset %d", ErrBufferTooSmall, width*8, width, offset)
	}
	return getUintLE(buf[offset:], width), width, nil
}

// Uint8 implements Codec[uint8]: 1 little-endian byte.
type Uint8 struct{}

func (Uint8) Width() int                { return 1 }
func (Uint8) ToUint64(v uint8) uint64   { return uint64(v) }
func (Uint8) FromUint64(v uint64) uint8 { return uint8(v) }
func (Uint8) EncodedSize(uint8) int     { return 1 }
func (Uint8) Encode(v uint8) ([]byte, error) {
	return []byte{v}, nil
}
func (Uint8) EncodeInto(v uint8, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(1, uint64(v), buf, offset)
}
func (Uint8) Decode(buf []byte) (uint8, error) {
	v, _, err := fixedUintDecodeFrom(1, buf, 0)
	return uint8(v), err
}
func (Uint8) DecodeFrom(buf []byte, offset int) (uint8, int, error) {
	v, n, err := fixedUintDecodeFrom(1, buf, offset)
	return uint8(v), n, err
}
func (Uint8) ToJSON(v uint8) (any, error) { return uint64(v), nil }
func (Uint8) FromJSON(j any) (uint8, error) {
	v, err := jsonToUint64(j)
	if err != nil {
		return 0, err
	}
	if v > 0xff {
		return 0, fmt.Errorf("%w: %d does not fit in uint8", ErrOutOfRange, v)
	}
	return uint8(v), nil
}

// Uint16 implements Codec[uint16]: 2 little-endian bytes.
type Uint16 struct{}

func (Uint16) Width() int                 { return 2 }
func (Uint16) ToUint64(v uint16) uint64   { return uint64(v) }
func (Uint16) FromUint64(v uint64) uint16 { return uint16(v) }
func (Uint16) EncodedSize(uint16) int     { return 2 }
func (Uint16) Encode(v uint16) ([]byte, error) {
	buf := make([]byte, 2)
	putUintLE(buf, 2, uint64(v))
	return buf, nil
}
func (Uint16) EncodeInto(v uint16, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(2, uint64(v), buf, offset)
}
func (Uint16) Decode(buf []byte) (uint16, error) {
	v, _, err := fixedUintDecodeFrom(2, buf, 0)
	return uint16(v), err
}
func (Uint16) DecodeFrom(buf []byte, offset int) (uint16, int, error) {
	v, n, err := fixedUintDecodeFrom(2, buf, offset)
	return uint16(v), n, err
}
func (Uint16) ToJSON(v uint16) (any, error) { return uint64(v), nil }
func (Uint16) FromJSON(j any) (uint16, error) {
	v, err := jsonToUint64(j)
	if err != nil {
		return 0, err
	}
	if v > 0xffff {
		return 0, fmt.Errorf("%w: %d does not fit in uint16", ErrOutOfRange, v)
	}
	return uint16(v), nil
}

// Uint32 implements Codec[uint32]: 4 little-endian bytes.
type Uint32 struct{}

func (Uint32) Width() int                 { return 4 }
func (Uint32) ToUint64(v uint32) uint64   { return uint64(v) }
func (Uint32) FromUint64(v uint64) uint32 { return uint32(v) }
func (Uint32) EncodedSize(uint32) int     { return 4 }
func (Uint32) Encode(v uint32) ([]byte, error) {
	buf := make([]byte, 4)
	putUintLE(buf, 4, uint64(v))
	return buf, nil
}
func (Uint32) EncodeInto(v uint32, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(4, uint64(v), buf, offset)
}
func (Uint32) Decode(buf []byte) (uint32, error) {
	v, _, err := fixedUintDecodeFrom(4, buf, 0)
	return uint32(v), err
}
func (Uint32) DecodeFrom(buf []byte, offset int) (uint32, int, error) {
	v, n, err := fixedUintDecodeFrom(4, buf, offset)
	return uint32(v), n, err
}
func (Uint32) ToJSON(v uint32) (any, error) { return uint64(v), nil }
func (Uint32) FromJSON(j any) (uint32, error) {
	v, err := jsonToUint64(j)
	if err != nil {
		return 0, err
	}
	if v > 0xffffffff {
		return 0, fmt.Errorf("%w: %d does not fit in uint32", ErrOutOfRange, v)
	}
	return uint32(v), nil
}

// Uint64 implements Codec[uint64]: 8 little-endian bytes.
type Uint64 struct{}

func (Uint64) Width() int                 { return 8 }
func (Uint64) ToUint64(v uint64) uint64   { return v }
func (Uint64) FromUint64(v uint64) uint64 { return v }
func (Uint64) EncodedSize(uint64) int     { return 8 }
func (Uint64) Encode(v uint64) ([]byte, error) {
	buf := make([]byte, 8)
	putUintLE(buf, 8, v)
	return buf, nil
}
func (Uint64) EncodeInto(v uint64, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(8, v, buf, offset)
}
func (Uint64) Decode(buf []byte) (uint64, error) {
	v, _, err := fixedUintDecodeFrom(8, buf, 0)
	return v, err
}
func (Uint64) DecodeFrom(buf []byte, offset int) (uint64, int, error) {
	return fixedUintDecodeFrom(8, buf, offset)
}
func (Uint64) ToJSON(v uint64) (any, error) { return v, nil }
func (Uint64) FromJSON(j any) (uint64, error) {
	return jsonToUint64(j)
}

// signedBias toggles the top bit of a width-byte two's-complement
// pattern. Adding 2^(bits-1) modulo 2^bits to any bit pattern is
// equivalent to flipping its top bit — the addition can only carry
// upward out of that bit position, never down into the lower bits — so
// this single XOR implements the spec's "bias by 2^(bits-1)" rule for
// both directions of the transform (it is its own inverse).
func signedBias(pattern uint64, width int) uint64 {
	top := uint64(1) << uint(8*width-1)
	return pattern ^ top
}

// Int8 implements Codec[int8]: 1 byte, sign-biased so the unsigned wire
// representation orders the same way as the signed value.
type Int8 struct{}

func (Int8) EncodedSize(int8) int { return 1 }
func (Int8) Encode(v int8) ([]byte, error) {
	return []byte{byte(signedBias(uint64(uint8(v)), 1))}, nil
}
func (Int8) EncodeInto(v int8, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(1, signedBias(uint64(uint8(v)), 1), buf, offset)
}
func (Int8) Decode(buf []byte) (int8, error) {
	v, _, err := fixedUintDecodeFrom(1, buf, 0)
	return int8(uint8(signedBias(v, 1))), err
}
func (Int8) DecodeFrom(buf []byte, offset int) (int8, int, error) {
	v, n, err := fixedUintDecodeFrom(1, buf, offset)
	return int8(uint8(signedBias(v, 1))), n, err
}
func (Int8) ToJSON(v int8) (any, error) { return int64(v), nil }
func (Int8) FromJSON(j any) (int8, error) {
	v, err := jsonToInt64(j)
	if err != nil {
		return 0, err
	}
	if v < -128 || v > 127 {
		return 0, fmt.Errorf("%w: %d does not fit in int8", ErrOutOfRange, v)
	}
	return int8(v), nil
}

// Int16 implements Codec[int16]: 2 bytes, sign-biased.
type Int16 struct{}

func (Int16) EncodedSize(int16) int { return 2 }
func (Int16) Encode(v int16) ([]byte, error) {
	buf := make([]byte, 2)
	putUintLE(buf, 2, signedBias(uint64(uint16(v)), 2))
	return buf, nil
}
func (Int16) EncodeInto(v int16, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(2, signedBias(uint64(uint16(v)), 2), buf, offset)
}
func (Int16) Decode(buf []byte) (int16, error) {
	v, _, err := fixedUintDecodeFrom(2, buf, 0)
	return int16(uint16(signedBias(v, 2))), err
}
func (Int16) DecodeFrom(buf []byte, offset int) (int16, int, error) {
	v, n, err := fixedUintDecodeFrom(2, buf, offset)
	return int16(uint16(signedBias(v, 2))), n, err
}
func (Int16) ToJSON(v int16) (any, error) { return int64(v), nil }
func (Int16) FromJSON(j any) (int16, error) {
	v, err := jsonToInt64(j)
	if err != nil {
		return 0, err
	}
	if v < -32768 || v > 32767 {
		return 0, fmt.Errorf("%w: %d does not fit in int16", ErrOutOfRange, v)
	}
	return int16(v), nil
}

// Int32 implements Codec[int32]: 4 bytes, sign-biased.
type Int32 struct{}

func (Int32) EncodedSize(int32) int { return 4 }
func (Int32) Encode(v int32) ([]byte, error) {
	buf := make([]byte, 4)
	putUintLE(buf, 4, signedBias(uint64(uint32(v)), 4))
	return buf, nil
}
func (Int32) EncodeInto(v int32, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(4, signedBias(uint64(uint32(v)), 4), buf, offset)
}
func (Int32) Decode(buf []byte) (int32, error) {
	v, _, err := fixedUintDecodeFrom(4, buf, 0)
	return int32(uint32(signedBias(v, 4))), err
}
func (Int32) DecodeFrom(buf []byte, offset int) (int32, int, error) {
	v, n, err := fixedUintDecodeFrom(4, buf, offset)
	return int32(uint32(signedBias(v, 4))), n, err
}
func (Int32) ToJSON(v int32) (any, error) { return int64(v), nil }
func (Int32) FromJSON(j any) (int32, error) {
	v, err := jsonToInt64(j)
	if err != nil {
		return 0, err
	}
	if v < -2147483648 || v > 2147483647 {
		return 0, fmt.Errorf("%w: %d does not fit in int32", ErrOutOfRange, v)
	}
	return int32(v), nil
}

// Int64 implements Codec[int64]: 8 bytes, sign-biased.
type Int64 struct{}

func (Int64) EncodedSize(int64) int { return 8 }
func (Int64) Encode(v int64) ([]byte, error) {
	buf := make([]byte, 8)
	putUintLE(buf, 8, signedBias(uint64(v), 8))
	return buf, nil
}
func (Int64) EncodeInto(v int64, buf []byte, offset int) (int, error) {
	return fixedUintEncodeInto(8, signedBias(uint64(v), 8), buf, offset)
}
func (Int64) Decode(buf []byte) (int64, error) {
	v, _, err := fixedUintDecodeFrom(8, buf, 0)
	return int64(signedBias(v, 8)), err
}
func (Int64) DecodeFrom(buf []byte, offset int) (int64, int, error) {
	v, n, err := fixedUintDecodeFrom(8, buf, offset)
	return int64(signedBias(v, 8)), n, err
}
func (Int64) ToJSON(v int64) (any, error) { return v, nil }
func (Int64) FromJSON(j any) (int64, error) {
	return jsonToInt64(j)
}
