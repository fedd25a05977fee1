package wire

import "fmt"

// BitOrder selects how logical bits within a byte are placed on the
// wire. It does not affect the in-memory layout of [Bits], which is
// always LSB-first internally (see [Bits]).
type BitOrder int

const (
	// LSBFirst places logical bit 0 of each group of 8 at bit position
	// 0 of the wire byte.
	LSBFirst BitOrder = iota
	// MSBFirst places logical bit 0 of each group of 8 at bit position
	// 7 of the wire byte.
	MSBFirst
)

// Bits is an ordered, mutable sequence of booleans with packed storage.
// The backing byte array is always laid out LSB-first internally:
// logical bit p lives in byte p/8, bit p%8 of that byte, regardless of
// the type's wire [BitOrder]. Order only controls how bits are placed
// into wire bytes on encode/decode; Get, Set, and the mutation methods
// always address bits by their logical index.
type Bits struct {
	order  BitOrder
	policy LengthPolicy
	data   []byte // packed, LSB-first, len(data) == ceil(length/8) rounded up to capacity
	length int
}

// NewBits creates a Bits value of the given order and length policy,
// initialized to initial. Returns ErrLengthPolicyViolation if
// len(initial) violates policy.
func NewBits(order BitOrder, policy LengthPolicy, initial []bool) (*Bits, error) {
	if err := policy.Validate(len(initial)); err != nil {
		return nil, err
	}
	b := &Bits{order: order, policy: policy}
	b.growTo(len(initial))
	b.length = len(initial)
	for i, v := range initial {
		b.setBit(i, v)
	}
	return b, nil
}

// Len returns the number of bits currently held.
func (b *Bits) Len() int { return b.length }

// Order returns the type's wire bit ordering.
func (b *Bits) Order() BitOrder { return b.order }

func (b *Bits) getBit(p int) bool {
	return b.data[p/8]&(1<<uint(p%8)) != 0
}

func (b *Bits) setBit(p int, v bool) {
	if v {
		b.data[p/8] |= 1 << uint(p%8)
	} else {
		b.data[p/8] &^= 1 << uint(p%8)
	}
}

// growTo ensures the backing array has at least ceil(n/8) bytes,
// growing geometrically.
func (b *Bits) growTo(n int) {
	needed := (n + 7) / 8
	if len(b.data) >= needed {
		return
	}
	grown := make([]byte, growCapacity(len(b.data), needed))
	copy(grown, b.data)
	b.data = grown
}

// Get returns the boolean at logical index i.
func (b *Bits) Get(i int) (bool, error) {
	if i < 0 || i >= b.length {
		return false, fmt.Errorf("%w: bits index %d out of range [0,%d)", ErrLengthPolicyViolation, i, b.length)
	}
	return b.getBit(i), nil
}

// Set overwrites the boolean at logical index i without changing the
// length.
func (b *Bits) Set(i int, v bool) error {
	if i < 0 || i >= b.length {
		return fmt.Errorf("%w: bits index %d out of range [0,%d)", ErrLengthPolicyViolation, i, b.length)
	}
	b.setBit(i, v)
	return nil
}

// Slice returns the booleans in [lo, hi).
func (b *Bits) Slice(lo, hi int) ([]bool, error) {
	if lo < 0 || hi > b.length || lo > hi {
		return nil, fmt.Errorf("%w: bits slice [%d,%d) out of range [0,%d]", ErrLengthPolicyViolation, lo, hi, b.length)
	}
	out := make([]bool, hi-lo)
	for i := range out {
		out[i] = b.getBit(lo + i)
	}
	return out, nil
}

// Append adds one bit to the end.
func (b *Bits) Append(v bool) error { return b.Extend([]bool{v}) }

// Extend appends vs to the end, enforcing the length policy atomically:
// on failure b is left unchanged.
func (b *Bits) Extend(vs []bool) error {
	newLen := b.length + len(vs)
	if err := b.policy.Validate(newLen); err != nil {
		return err
	}
	b.growTo(newLen)
	// Every new position is written explicitly (false as well as true),
	// so whatever a reused byte held above the old length is overwritten.
	for i, v := range vs {
		b.setBit(b.length+i, v)
	}
	b.length = newLen
	return nil
}

// Insert inserts v at logical index i, shifting subsequent bits right.
func (b *Bits) Insert(i int, v bool) error {
	if i < 0 || i > b.length {
		return fmt.Errorf("%w: bits insert index %d out of range [0,%d]", ErrLengthPolicyViolation, i, b.length)
	}
	newLen := b.length + 1
	if err := b.policy.Validate(newLen); err != nil {
		return err
	}
	b.growTo(newLen)
	for p := newLen - 1; p > i; p-- {
		b.setBit(p, b.getBit(p-1))
	}
	b.setBit(i, v)
	b.length = newLen
	return nil
}

// Pop removes and returns the bit at logical index i (default: the last
// bit).
func (b *Bits) Pop(i ...int) (bool, error) {
	idx := b.length - 1
	if len(i) > 0 {
		idx = i[0]
	}
	if idx < 0 || idx >= b.length {
		return false, fmt.Errorf("%w: bits pop index %d out of range [0,%d)", ErrLengthPolicyViolation, idx, b.length)
	}
	if err := b.policy.Validate(b.length - 1); err != nil {
		return false, err
	}
	v := b.getBit(idx)
	for p := idx; p < b.length-1; p++ {
		b.setBit(p, b.getBit(p+1))
	}
	b.length--
	b.setBit(b.length, false) // zero the vacated trailing bit
	return v, nil
}

// wireBitPos maps a logical intra-byte position to its wire bit
// position for the given order.
func wireBitPos(order BitOrder, intra int) int {
	if order == MSBFirst {
		return 7 - intra
	}
	return intra
}

// BitsCodec implements Codec[*Bits]. If policy.IsFixed(), the wire form
// omits the length prefix.
type BitsCodec struct {
	Order  BitOrder
	Policy LengthPolicy
}

func (c BitsCodec) byteCount(n int) int { return (n + 7) / 8 }

func (c BitsCodec) EncodedSize(v *Bits) int {
	if c.Policy.IsFixed() {
		return c.byteCount(v.Len())
	}
	return VarintSize(uint64(v.Len())) + c.byteCount(v.Len())
}

func (c BitsCodec) Encode(v *Bits) ([]byte, error) {
	buf := make([]byte, c.EncodedSize(v))
	if _, err := c.EncodeInto(v, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c BitsCodec) EncodeInto(v *Bits, buf []byte, offset int) (int, error) {
	if v.order != c.Order {
		return 0, fmt.Errorf("%w: bits value has order %v, codec expects %v", ErrTypeMismatch, v.order, c.Order)
	}
	n := c.EncodedSize(v)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: bits needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	pos := offset
	if !c.Policy.IsFixed() {
		pos += EncodeVarintInto(uint64(v.Len()), buf[pos:])
	}
	packed := buf[pos : pos+c.byteCount(v.Len())]
	for i := range packed {
		packed[i] = 0
	}
	for p := 0; p < v.Len(); p++ {
		if !v.getBit(p) {
			continue
		}
		wireByte := p / 8
		wireBit := wireBitPos(c.Order, p%8)
		packed[wireByte] |= 1 << uint(wireBit)
	}
	return n, nil
}

func (c BitsCodec) Decode(buf []byte) (*Bits, error) {
	v, _, err := c.DecodeFrom(buf, 0)
	return v, err
}

func (c BitsCodec) DecodeFrom(buf []byte, offset int) (*Bits, int, error) {
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
	byteCount := c.byteCount(length)
	if pos+byteCount > len(buf) {
		return nil, 0, fmt.Errorf("%w: bits needs %d payload bytes at offset %d", ErrBufferTooSmall, byteCount, pos)
	}
	if err := c.Policy.Validate(length); err != nil {
		return nil, 0, err
	}
	v := &Bits{order: c.Order, policy: c.Policy}
	v.growTo(length)
	v.length = length
	packed := buf[pos : pos+byteCount]
	for p := 0; p < length; p++ {
		wireByte := p / 8
		wireBit := wireBitPos(c.Order, p%8)
		if packed[wireByte]&(1<<uint(wireBit)) != 0 {
			v.setBit(p, true)
		}
	}
	return v, prefixSize + byteCount, nil
}

// ToJSON emits hex of the packed wire form. For a fixed-length type this
// is exactly "hex of the packed form" per the spec's JSON rule; for a
// variable-length type the length prefix is included in the hex too —
// otherwise a bit length that is not a multiple of 8 could not be
// recovered from the packed bytes alone, breaking the round-trip
// property required of every codec.
func (c BitsCodec) ToJSON(v *Bits) (any, error) {
	encoded, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	return hexToJSON(encoded), nil
}

func (c BitsCodec) FromJSON(j any) (*Bits, error) {
	encoded, err := hexFromJSON(j)
	if err != nil {
		return nil, err
	}
	v, _, err := c.DecodeFrom(encoded, 0)
	return v, err
}
