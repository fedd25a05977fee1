package wire

import (
	"fmt"
	"math"
)

// Codec is the uniform contract every value type in this package
// implements. T is the Go representation of the decoded value — a plain
// type (uint16, string) for leaves, a pointer to a mutable container
// (*Bits, *ByteArray, *Sequence) for containers with append/insert/pop,
// or a small struct ([Option], [ChoiceValue], [StructValue]) for tagged
// sums and records.
type Codec[T any] interface {
	// EncodedSize returns the exact byte length of Encode(v).
	EncodedSize(v T) int

	// Encode allocates and returns the encoding of v.
	Encode(v T) ([]byte, error)

	// EncodeInto writes the encoding of v at buf[offset:] and returns the
	// number of bytes written. It allocates no output buffer; apart from
	// [DictionaryCodec], which allocates a slice of its keys to sort them,
	// the implementations in this package perform no allocation. buf must
	// have at least EncodedSize(v) bytes available starting at offset.
	EncodeInto(v T, buf []byte, offset int) (int, error)

	// Decode parses a value starting at buf[0], discarding the count of
	// bytes consumed.
	Decode(buf []byte) (T, error)

	// DecodeFrom parses a value starting at buf[offset] and returns it
	// along with the number of bytes consumed.
	DecodeFrom(buf []byte, offset int) (T, int, error)

	// ToJSON converts v to its JSON form (a value safe to pass to
	// encoding/json.Marshal: numbers, strings, bools, nil, []any, or
	// map[string]any).
	ToJSON(v T) (any, error)

	// FromJSON converts a decoded JSON value (as produced by
	// encoding/json.Unmarshal into `any`) back to T.
	FromJSON(j any) (T, error)
}

// AnyCodec is the type-erased form of Codec, used wherever a composite
// type holds element codecs of heterogeneous Go type: structure fields,
// choice alternatives, and (for the general path) dictionary keys and
// values. Erase adapts any Codec[T] to an AnyCodec.
type AnyCodec interface {
	EncodedSizeAny(v any) int
	EncodeAny(v any) ([]byte, error)
	EncodeIntoAny(v any, buf []byte, offset int) (int, error)
	DecodeAny(buf []byte) (any, error)
	DecodeFromAny(buf []byte, offset int) (any, int, error)
	ToJSONAny(v any) (any, error)
	FromJSONAny(j any) (any, error)
}

type erased[T any] struct{ codec Codec[T] }

// Erase wraps a Codec[T] so it can be stored and invoked alongside codecs
// of other element types, e.g. in a [StructType]'s field list or a
// [ChoiceType]'s alternative list.
func Erase[T any](c Codec[T]) AnyCodec { return erased[T]{codec: c} }

func (e erased[T]) cast(v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: expected %T, got %T", ErrTypeMismatch, zero, v)
	}
	return t, nil
}

func (e erased[T]) EncodedSizeAny(v any) int {
	t, err := e.cast(v)
	if err != nil {
		return 0
	}
	return e.codec.EncodedSize(t)
}

func (e erased[T]) EncodeAny(v any) ([]byte, error) {
	t, err := e.cast(v)
	if err != nil {
		return nil, err
	}
	return e.codec.Encode(t)
}

func (e erased[T]) EncodeIntoAny(v any, buf []byte, offset int) (int, error) {
	t, err := e.cast(v)
	if err != nil {
		return 0, err
	}
	return e.codec.EncodeInto(t, buf, offset)
}

func (e erased[T]) DecodeAny(buf []byte) (any, error) {
	return e.codec.Decode(buf)
}

func (e erased[T]) DecodeFromAny(buf []byte, offset int) (any, int, error) {
	return e.codec.DecodeFrom(buf, offset)
}

func (e erased[T]) ToJSONAny(v any) (any, error) {
	t, err := e.cast(v)
	if err != nil {
		return nil, err
	}
	return e.codec.ToJSON(t)
}

func (e erased[T]) FromJSONAny(j any) (any, error) {
	return e.codec.FromJSON(j)
}

// LengthPolicy bounds the admissible length of a mutable container
// (bits, typed sequence, byte array). Min == Max > 0 means a fixed
// length: the wire encoding omits the length prefix and every mutation
// that would change the length is rejected.
type LengthPolicy struct {
	Min, Max int
}

// Fixed returns a length policy admitting exactly n.
func Fixed(n int) LengthPolicy { return LengthPolicy{Min: n, Max: n} }

// Bounded returns a length policy admitting [min, max].
func Bounded(min, max int) LengthPolicy { return LengthPolicy{Min: min, Max: max} }

// Unbounded returns a length policy admitting any non-negative length.
func Unbounded() LengthPolicy { return LengthPolicy{Min: 0, Max: math.MaxInt} }

// IsFixed reports whether the policy pins the length to a single value.
func (p LengthPolicy) IsFixed() bool { return p.Min == p.Max && p.Min > 0 }

// Validate returns ErrLengthPolicyViolation if n falls outside [Min, Max].
func (p LengthPolicy) Validate(n int) error {
	if n < p.Min || n > p.Max {
		return fmt.Errorf("%w: length %d outside [%d, %d]", ErrLengthPolicyViolation, n, p.Min, p.Max)
	}
	return nil
}

// growCapacity returns the next backing-storage capacity to use when a
// mutable container needs at least needed units of storage and
// currently has current. Growth is geometric (doubling) so that append
// is amortized O(1), per the design note that capacity should grow
// "≥2x" rather than exactly to fit.
func growCapacity(current, needed int) int {
	if current == 0 {
		current = 1
	}
	for current < needed {
		current *= 2
	}
	return current
}

// putUintLE writes the low width bytes of v into buf in little-endian
// order. width must be 1, 2, 4, or 8.
func putUintLE(buf []byte, width int, v uint64) {
	for i := 0; i < width; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

// getUintLE reads width little-endian bytes from buf as a uint64. width
// must be 1, 2, 4, or 8.
func getUintLE(buf []byte, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(buf[i]) << (8 * i)
	}
	return v
}

// maxUintForWidth returns the largest value representable in width
// bytes.
func maxUintForWidth(width int) uint64 {
	if width >= 8 {
		return math.MaxUint64
	}
	return (uint64(1) << (8 * uint(width))) - 1
}
