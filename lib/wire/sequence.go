package wire

import "fmt"

// Sequence is seq[T] for a fixed-width unsigned integer element type T
// (1, 2, 4, or 8 bytes): an ordered, mutable, contiguous vector backed
// by a byte buffer of exactly ElementWidth * capacity bytes. Elements
// are addressed as uint64 regardless of ElementWidth; range validation
// against the configured width happens at every mutation.
type Sequence struct {
	elementWidth int
	policy       LengthPolicy
	data         []byte // packed, little-endian elements, len >= length*elementWidth (grown geometrically)
	length       int
}

// NewSequence creates a Sequence of the given element width (1, 2, 4, or
// 8) and length policy, initialized to initial.
func NewSequence(elementWidth int, policy LengthPolicy, initial []uint64) (*Sequence, error) {
	if elementWidth != 1 && elementWidth != 2 && elementWidth != 4 && elementWidth != 8 {
		return nil, fmt.Errorf("%w: sequence element width must be 1, 2, 4, or 8, got %d", ErrTypeMismatch, elementWidth)
	}
	if err := policy.Validate(len(initial)); err != nil {
		return nil, err
	}
	s := &Sequence{elementWidth: elementWidth, policy: policy}
	s.growTo(len(initial))
	s.length = len(initial)
	for i, v := range initial {
		if err := s.checkRange(v); err != nil {
			return nil, err
		}
		putUintLE(s.data[i*elementWidth:], elementWidth, v)
	}
	return s, nil
}

// Len returns the number of elements.
func (s *Sequence) Len() int { return s.length }

// ElementWidth returns the byte width shared by every element.
func (s *Sequence) ElementWidth() int { return s.elementWidth }

func (s *Sequence) checkRange(v uint64) error {
	if v > maxUintForWidth(s.elementWidth) {
		return fmt.Errorf("%w: %d exceeds %d-byte element width", ErrOutOfRange, v, s.elementWidth)
	}
	return nil
}

func (s *Sequence) growTo(elements int) {
	needed := elements * s.elementWidth
	if len(s.data) >= needed {
		return
	}
	grown := make([]byte, growCapacity(len(s.data), needed))
	copy(grown, s.data)
	s.data = grown
}

// Get returns the element at index i.
func (s *Sequence) Get(i int) (uint64, error) {
	if i < 0 || i >= s.length {
		return 0, fmt.Errorf("%w: sequence index %d out of range [0,%d)", ErrLengthPolicyViolation, i, s.length)
	}
	return getUintLE(s.data[i*s.elementWidth:], s.elementWidth), nil
}

// Set overwrites the element at index i without changing the length.
func (s *Sequence) Set(i int, v uint64) error {
	if i < 0 || i >= s.length {
		return fmt.Errorf("%w: sequence index %d out of range [0,%d)", ErrLengthPolicyViolation, i, s.length)
	}
	if err := s.checkRange(v); err != nil {
		return err
	}
	putUintLE(s.data[i*s.elementWidth:], s.elementWidth, v)
	return nil
}

// Slice returns the elements in [lo, hi).
func (s *Sequence) Slice(lo, hi int) ([]uint64, error) {
	if lo < 0 || hi > s.length || lo > hi {
		return nil, fmt.Errorf("%w: sequence slice [%d,%d) out of range [0,%d]", ErrLengthPolicyViolation, lo, hi, s.length)
	}
	out := make([]uint64, hi-lo)
	for i := range out {
		out[i] = getUintLE(s.data[(lo+i)*s.elementWidth:], s.elementWidth)
	}
	return out, nil
}

// Append adds one element to the end.
func (s *Sequence) Append(v uint64) error { return s.Extend([]uint64{v}) }

// Extend appends vs to the end. Range and length-policy checks happen
// before any mutation, so failure leaves s unchanged.
func (s *Sequence) Extend(vs []uint64) error {
	newLen := s.length + len(vs)
	if err := s.policy.Validate(newLen); err != nil {
		return err
	}
	for _, v := range vs {
		if err := s.checkRange(v); err != nil {
			return err
		}
	}
	s.growTo(newLen)
	for i, v := range vs {
		putUintLE(s.data[(s.length+i)*s.elementWidth:], s.elementWidth, v)
	}
	s.length = newLen
	return nil
}

// Insert inserts v at index i, shifting subsequent elements right.
func (s *Sequence) Insert(i int, v uint64) error {
	if i < 0 || i > s.length {
		return fmt.Errorf("%w: sequence insert index %d out of range [0,%d]", ErrLengthPolicyViolation, i, s.length)
	}
	newLen := s.length + 1
	if err := s.policy.Validate(newLen); err != nil {
		return err
	}
	if err := s.checkRange(v); err != nil {
		return err
	}
	s.growTo(newLen)
	w := s.elementWidth
	copy(s.data[(i+1)*w:(newLen)*w], s.data[i*w:s.length*w])
	putUintLE(s.data[i*w:], w, v)
	s.length = newLen
	return nil
}

// Pop removes and returns the element at index i (default: the last
// element).
func (s *Sequence) Pop(i ...int) (uint64, error) {
	idx := s.length - 1
	if len(i) > 0 {
		idx = i[0]
	}
	if idx < 0 || idx >= s.length {
		return 0, fmt.Errorf("%w: sequence pop index %d out of range [0,%d)", ErrLengthPolicyViolation, idx, s.length)
	}
	if err := s.policy.Validate(s.length - 1); err != nil {
		return 0, err
	}
	w := s.elementWidth
	v := getUintLE(s.data[idx*w:], w)
	copy(s.data[idx*w:(s.length-1)*w], s.data[(idx+1)*w:s.length*w])
	s.length--
	return v, nil
}

// SequenceCodec implements Codec[*Sequence]. If policy.IsFixed(), the
// wire form omits the length prefix.
type SequenceCodec struct {
	ElementWidth int
	Policy       LengthPolicy
}

func (c SequenceCodec) EncodedSize(v *Sequence) int {
	payload := v.Len() * c.ElementWidth
	if c.Policy.IsFixed() {
		return payload
	}
	return VarintSize(uint64(v.Len())) + payload
}

func (c SequenceCodec) Encode(v *Sequence) ([]byte, error) {
	buf := make([]byte, c.EncodedSize(v))
	if _, err := c.EncodeInto(v, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeInto is the bulk fast path: the sequence's backing storage is
// already little-endian packed elements, so encoding is a single copy
// rather than per-element codec calls.
func (c SequenceCodec) EncodeInto(v *Sequence, buf []byte, offset int) (int, error) {
	if v.elementWidth != c.ElementWidth {
		return 0, fmt.Errorf("%w: sequence has element width %d, codec expects %d", ErrTypeMismatch, v.elementWidth, c.ElementWidth)
	}
	n := c.EncodedSize(v)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: sequence needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	pos := offset
	if !c.Policy.IsFixed() {
		pos += EncodeVarintInto(uint64(v.Len()), buf[pos:])
	}
	copy(buf[pos:], v.data[:v.Len()*c.ElementWidth])
	return n, nil
}

func (c SequenceCodec) Decode(buf []byte) (*Sequence, error) {
	v, _, err := c.DecodeFrom(buf, 0)
	return v, err
}

// DecodeFrom is the bulk fast path counterpart: the payload is copied
// directly into the sequence's backing storage rather than parsed
// element by element.
func (c SequenceCodec) DecodeFrom(buf []byte, offset int) (*Sequence, int, error) {
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
	if err := c.Policy.Validate(length); err != nil {
		return nil, 0, err
	}
	payload := length * c.ElementWidth
	if pos+payload > len(buf) {
		return nil, 0, fmt.Errorf("%w: sequence needs %d payload bytes at offset %d", ErrBufferTooSmall, payload, pos)
	}
	v := &Sequence{elementWidth: c.ElementWidth, policy: c.Policy}
	v.growTo(length)
	v.length = length
	copy(v.data, buf[pos:pos+payload])
	return v, prefixSize + payload, nil
}

func (c SequenceCodec) ToJSON(v *Sequence) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		out[i] = getUintLE(v.data[i*c.ElementWidth:], c.ElementWidth)
	}
	return out, nil
}

func (c SequenceCodec) FromJSON(j any) (*Sequence, error) {
	items, ok := j.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array, got %T", ErrMalformed, j)
	}
	values := make([]uint64, len(items))
	for i, item := range items {
		v, err := jsonToUint64(item)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return NewSequence(c.ElementWidth, c.Policy, values)
}
