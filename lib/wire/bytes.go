package wire

import "fmt"

// FixedBytes implements Codec[[]byte] for a byte string of exactly N
// bytes with no length prefix on the wire. Standard power-of-two widths
// are predeclared below as convenience aliases; all share this contract.
type FixedBytes struct{ N int }

// Standard fixed-width byte codecs, in bytes.
var (
	Bytes16   = FixedBytes{N: 16}
	Bytes32   = FixedBytes{N: 32}
	Bytes64   = FixedBytes{N: 64}
	Bytes128  = FixedBytes{N: 128}
	Bytes256  = FixedBytes{N: 256}
	Bytes512  = FixedBytes{N: 512}
	Bytes1024 = FixedBytes{N: 1024}
)

func (f FixedBytes) EncodedSize([]byte) int { return f.N }

func (f FixedBytes) Encode(v []byte) ([]byte, error) {
	if len(v) != f.N {
		return nil, fmt.Errorf("%w: fixed bytes[%d]: got %d bytes", ErrLengthPolicyViolation, f.N, len(v))
	}
	out := make([]byte, f.N)
	copy(out, v)
	return out, nil
}

func (f FixedBytes) EncodeInto(v []byte, buf []byte, offset int) (int, error) {
	if len(v) != f.N {
		return 0, fmt.Errorf("%w: fixed bytes[%d]: got %d bytes", ErrLengthPolicyViolation, f.N, len(v))
	}
	if offset+f.N > len(buf) {
		return 0, fmt.Errorf("%w: fixed bytes[%d] needs %d bytes at offset %d", ErrBufferTooSmall, f.N, f.N, offset)
	}
	copy(buf[offset:offset+f.N], v)
	return f.N, nil
}

func (f FixedBytes) Decode(buf []byte) ([]byte, error) {
	v, _, err := f.DecodeFrom(buf, 0)
	return v, err
}

func (f FixedBytes) DecodeFrom(buf []byte, offset int) ([]byte, int, error) {
	if offset < 0 || offset+f.N > len(buf) {
		return nil, 0, fmt.Errorf("%w: fixed bytes[%d] needs %d bytes at offset %d", ErrBufferTooSmall, f.N, f.N, offset)
	}
	out := make([]byte, f.N)
	copy(out, buf[offset:offset+f.N])
	return out, f.N, nil
}

func (f FixedBytes) ToJSON(v []byte) (any, error) { return hexToJSON(v), nil }

func (f FixedBytes) FromJSON(j any) ([]byte, error) {
	data, err := hexFromJSON(j)
	if err != nil {
		return nil, err
	}
	if len(data) != f.N {
		return nil, fmt.Errorf("%w: fixed bytes[%d]: got %d bytes", ErrLengthPolicyViolation, f.N, len(data))
	}
	return data, nil
}

// VariableBytes implements Codec[[]byte] for a byte string of arbitrary
// length: a varint byte-length prefix followed by the raw payload.
type VariableBytes struct{}

func (VariableBytes) EncodedSize(v []byte) int { return VarintSize(uint64(len(v))) + len(v) }

func (VariableBytes) Encode(v []byte) ([]byte, error) {
	out := AppendVarint(make([]byte, 0, VarintSize(uint64(len(v)))+len(v)), uint64(len(v)))
	return append(out, v...), nil
}

func (VariableBytes) EncodeInto(v []byte, buf []byte, offset int) (int, error) {
	n := VarintSize(uint64(len(v)))
	if offset+n+len(v) > len(buf) {
		return 0, fmt.Errorf("%w: variable bytes needs %d bytes at offset %d", ErrBufferTooSmall, n+len(v), offset)
	}
	written := EncodeVarintInto(uint64(len(v)), buf[offset:])
	copy(buf[offset+written:], v)
	return written + len(v), nil
}

func (VariableBytes) Decode(buf []byte) ([]byte, error) {
	v, _, err := VariableBytes{}.DecodeFrom(buf, 0)
	return v, err
}

func (VariableBytes) DecodeFrom(buf []byte, offset int) ([]byte, int, error) {
	length, prefixSize, err := DecodeVarintFrom(buf, offset)
	if err != nil {
		return nil, 0, err
	}
	start := offset + prefixSize
	end := start + int(length)
	if end > len(buf) || end < start {
		return nil, 0, fmt.Errorf("%w: variable bytes needs %d payload bytes at offset %d", ErrBufferTooSmall, length, start)
	}
	out := make([]byte, length)
	copy(out, buf[start:end])
	return out, prefixSize + int(length), nil
}

func (VariableBytes) ToJSON(v []byte) (any, error) { return hexToJSON(v), nil }

func (VariableBytes) FromJSON(j any) ([]byte, error) { return hexFromJSON(j) }

// ByteArray is a mutable, owned octet container. It backs the
// append/extend/insert/pop mutation API the spec requires of byte-array
// values; [FixedBytes] and [VariableBytes] above cover the immutable
// encode/decode contract for plain []byte values.
type ByteArray struct {
	policy LengthPolicy
	data   []byte
}

// NewByteArray creates a ByteArray governed by policy, initialized to
// initial (copied). Returns ErrLengthPolicyViolation if len(initial)
// violates policy.
func NewByteArray(policy LengthPolicy, initial []byte) (*ByteArray, error) {
	if err := policy.Validate(len(initial)); err != nil {
		return nil, err
	}
	data := make([]byte, len(initial), growCapacity(0, len(initial)))
	copy(data, initial)
	return &ByteArray{policy: policy, data: data}, nil
}

// Len returns the current length in bytes.
func (b *ByteArray) Len() int { return len(b.data) }

// Bytes returns a copy of the current contents.
func (b *ByteArray) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Get returns the byte at index i.
func (b *ByteArray) Get(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, fmt.Errorf("%w: byte array index %d out of range [0,%d)", ErrLengthPolicyViolation, i, len(b.data))
	}
	return b.data[i], nil
}

// Set overwrites the byte at index i without changing the length.
func (b *ByteArray) Set(i int, v byte) error {
	if i < 0 || i >= len(b.data) {
		return fmt.Errorf("%w: byte array index %d out of range [0,%d)", ErrLengthPolicyViolation, i, len(b.data))
	}
	b.data[i] = v
	return nil
}

// Append adds one byte to the end.
func (b *ByteArray) Append(v byte) error {
	return b.Extend([]byte{v})
}

// Extend appends vs to the end, enforcing the length policy as a single
// atomic check: on failure b is left unchanged.
func (b *ByteArray) Extend(vs []byte) error {
	newLen := len(b.data) + len(vs)
	if err := b.policy.Validate(newLen); err != nil {
		return err
	}
	if cap(b.data) < newLen {
		grown := make([]byte, len(b.data), growCapacity(cap(b.data), newLen))
		copy(grown, b.data)
		b.data = grown
	}
	b.data = append(b.data, vs...)
	return nil
}

// Insert inserts v at index i, shifting subsequent bytes right.
func (b *ByteArray) Insert(i int, v byte) error {
	if i < 0 || i > len(b.data) {
		return fmt.Errorf("%w: byte array insert index %d out of range [0,%d]", ErrLengthPolicyViolation, i, len(b.data))
	}
	newLen := len(b.data) + 1
	if err := b.policy.Validate(newLen); err != nil {
		return err
	}
	if cap(b.data) < newLen {
		grown := make([]byte, len(b.data), growCapacity(cap(b.data), newLen))
		copy(grown, b.data)
		b.data = grown
	}
	b.data = append(b.data, 0)
	copy(b.data[i+1:], b.data[i:len(b.data)-1])
	b.data[i] = v
	return nil
}

// Pop removes and returns the byte at index i (default: the last byte).
func (b *ByteArray) Pop(i ...int) (byte, error) {
	idx := len(b.data) - 1
	if len(i) > 0 {
		idx = i[0]
	}
	if idx < 0 || idx >= len(b.data) {
		return 0, fmt.Errorf("%w: byte array pop index %d out of range [0,%d)", ErrLengthPolicyViolation, idx, len(b.data))
	}
	if err := b.policy.Validate(len(b.data) - 1); err != nil {
		return 0, err
	}
	v := b.data[idx]
	b.data = append(b.data[:idx], b.data[idx+1:]...)
	return v, nil
}

// ByteArrayCodec implements Codec[*ByteArray]. If policy.IsFixed(), the
// wire form omits the length prefix.
type ByteArrayCodec struct{ Policy LengthPolicy }

func (c ByteArrayCodec) EncodedSize(v *ByteArray) int {
	if c.Policy.IsFixed() {
		return v.Len()
	}
	return VarintSize(uint64(v.Len())) + v.Len()
}

func (c ByteArrayCodec) Encode(v *ByteArray) ([]byte, error) {
	buf := make([]byte, c.EncodedSize(v))
	if _, err := c.EncodeInto(v, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c ByteArrayCodec) EncodeInto(v *ByteArray, buf []byte, offset int) (int, error) {
	n := c.EncodedSize(v)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: byte array needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	pos := offset
	if !c.Policy.IsFixed() {
		pos += EncodeVarintInto(uint64(v.Len()), buf[pos:])
	}
	copy(buf[pos:], v.data)
	return n, nil
}

func (c ByteArrayCodec) Decode(buf []byte) (*ByteArray, error) {
	v, _, err := c.DecodeFrom(buf, 0)
	return v, err
}

func (c ByteArrayCodec) DecodeFrom(buf []byte, offset int) (*ByteArray, int, error) {
	pos := offset
	length := c.Policy.Min
	prefixSize := 0
	if !c.Policy.IsFixed() {
		l, n, err := DecodeVarintFrom(buf, pos)
		if err != nil {
			return nil, 0, err
		}
		length, prefixSize = int(l), n
		pos += n
	}
	if pos+length > len(buf) {
		return nil, 0, fmt.Errorf("%w: byte array needs %d payload bytes at offset %d", ErrBufferTooSmall, length, pos)
	}
	if err := c.Policy.Validate(length); err != nil {
		return nil, 0, err
	}
	v, err := NewByteArray(c.Policy, buf[pos:pos+length])
	if err != nil {
		return nil, 0, err
	}
	return v, prefixSize + length, nil
}

func (c ByteArrayCodec) ToJSON(v *ByteArray) (any, error) { return hexToJSON(v.data), nil }

func (c ByteArrayCodec) FromJSON(j any) (*ByteArray, error) {
	data, err := hexFromJSON(j)
	if err != nil {
		return nil, err
	}
	return NewByteArray(c.Policy, data)
}
