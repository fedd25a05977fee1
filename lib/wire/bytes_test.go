package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestFixedBytesRoundTrip(t *testing.T) {
	t.Parallel()

	v := make([]byte, 16)
	for i := range v {
		v[i] = byte(i)
	}

	encoded, err := Bytes16.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 16 {
		t.Fatalf("expected 16 bytes with no length prefix, got %d", len(encoded))
	}
	decoded, err := Bytes16.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, v) {
		t.Errorf("round trip mismatch: got % X, want % X", decoded, v)
	}

	j, err := Bytes16.ToJSON(v)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := Bytes16.FromJSON(j)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !bytes.Equal(back, v) {
		t.Errorf("json round trip mismatch: got % X, want % X", back, v)
	}
}

func TestFixedBytesWrongLength(t *testing.T) {
	t.Parallel()

	if _, err := Bytes16.Encode(make([]byte, 15)); !errors.Is(err, ErrLengthPolicyViolation) {
		t.Errorf("expected ErrLengthPolicyViolation, got %v", err)
	}
}

func TestVariableBytesRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range [][]byte{{}, {0x01}, bytes.Repeat([]byte{0xAB}, 300)} {
		encoded, err := (VariableBytes{}).Encode(v)
		if err != nil {
			t.Fatalf("Encode(% X): %v", v, err)
		}
		decoded, err := (VariableBytes{}).Decode(encoded)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !bytes.Equal(decoded, v) {
			t.Errorf("round trip mismatch for % X: got % X", v, decoded)
		}
	}
}

func TestVariableBytesTruncated(t *testing.T) {
	t.Parallel()

	encoded, _ := (VariableBytes{}).Encode([]byte{1, 2, 3, 4, 5})
	if _, _, err := (VariableBytes{}).DecodeFrom(encoded[:2], 0); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
}

func TestByteArrayMutation(t *testing.T) {
	t.Parallel()

	b, err := NewByteArray(Bounded(0, 8), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewByteArray: %v", err)
	}

	if err := b.Append(4); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := b.Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("after Append, got % X", got)
	}

	if err := b.Insert(0, 0); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := b.Bytes(); !bytes.Equal(got, []byte{0, 1, 2, 3, 4}) {
		t.Errorf("after Insert, got % X", got)
	}

	popped, err := b.Pop(0)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if popped != 0 {
		t.Errorf("Pop returned %d, want 0", popped)
	}
	if got := b.Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("after Pop, got % X", got)
	}

	if err := b.Set(1, 99); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := b.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != 99 {
		t.Errorf("Get(1) = %d, want 99", v)
	}
}

func TestByteArrayLengthPolicyLeavesContainerUnchanged(t *testing.T) {
	t.Parallel()

	b, err := NewByteArray(Fixed(2), []byte{1, 2})
	if err != nil {
		t.Fatalf("NewByteArray: %v", err)
	}

	before := b.Bytes()
	if err := b.Append(3); !errors.Is(err, ErrLengthPolicyViolation) {
		t.Fatalf("expected ErrLengthPolicyViolation, got %v", err)
	}
	if got := b.Bytes(); !bytes.Equal(got, before) {
		t.Errorf("container mutated on rejected Append: got % X, want % X", got, before)
	}

	if _, err := b.Pop(); !errors.Is(err, ErrLengthPolicyViolation) {
		t.Fatalf("expected ErrLengthPolicyViolation popping below fixed length, got %v", err)
	}
	if got := b.Bytes(); !bytes.Equal(got, before) {
		t.Errorf("container mutated on rejected Pop: got % X, want % X", got, before)
	}
}

func TestByteArrayCodecFixedOmitsLengthPrefix(t *testing.T) {
	t.Parallel()

	b, err := NewByteArray(Fixed(4), []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewByteArray: %v", err)
	}
	codec := ByteArrayCodec{Policy: Fixed(4)}

	encoded, err := codec.Encode(b)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 4 {
		t.Fatalf("fixed byte array should encode with no length prefix, got %d bytes", len(encoded))
	}

	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), b.Bytes()) {
		t.Errorf("round trip mismatch")
	}
}

func TestByteArrayCodecVariableIncludesLengthPrefix(t *testing.T) {
	t.Parallel()

	b, err := NewByteArray(Unbounded(), []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewByteArray: %v", err)
	}
	codec := ByteArrayCodec{Policy: Unbounded()}

	encoded, err := codec.Encode(b)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 1+3 {
		t.Fatalf("expected 1-byte prefix + 3 payload bytes, got %d", len(encoded))
	}

	decoded, n, err := codec.DecodeFrom(encoded, 0)
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if n != len(encoded) {
		t.Errorf("consumed %d bytes, want %d", n, len(encoded))
	}
	if !bytes.Equal(decoded.Bytes(), b.Bytes()) {
		t.Errorf("round trip mismatch")
	}
}
