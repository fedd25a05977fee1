package wire

import (
	"errors"
	"reflect"
	"testing"
)

func TestSequenceRoundTripBulkFastPath(t *testing.T) {
	t.Parallel()

	for _, width := range []int{1, 2, 4, 8} {
		s, err := NewSequence(width, Bounded(0, 64), []uint64{0, 1, maxUintForWidth(width)})
		if err != nil {
			t.Fatalf("width %d: NewSequence: %v", width, err)
		}
		codec := SequenceCodec{ElementWidth: width, Policy: Bounded(0, 64)}

		encoded, err := codec.Encode(s)
		if err != nil {
			t.Fatalf("width %d: Encode: %v", width, err)
		}
		decoded, n, err := codec.DecodeFrom(encoded, 0)
		if err != nil {
			t.Fatalf("width %d: DecodeFrom: %v", width, err)
		}
		if n != len(encoded) {
			t.Errorf("width %d: consumed %d bytes, want %d", width, n, len(encoded))
		}
		got, _ := decoded.Slice(0, decoded.Len())
		want := []uint64{0, 1, maxUintForWidth(width)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("width %d: round trip got %v, want %v", width, got, want)
		}
	}
}

func TestSequenceFixedLengthOmitsPrefix(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(4, Fixed(3), []uint64{10, 20, 30})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	codec := SequenceCodec{ElementWidth: 4, Policy: Fixed(3)}
	encoded, err := codec.Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 3*4 {
		t.Fatalf("fixed sequence should have no length prefix, got %d bytes", len(encoded))
	}
}

func TestSequenceRangeValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSequence(1, Unbounded(), []uint64{256})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for 256 in a 1-byte element, got %v", err)
	}
}

func TestSequenceMutationLeavesContainerUnchangedOnFailure(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(1, Bounded(0, 4), []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	before, _ := s.Slice(0, s.Len())

	if err := s.Append(999); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	after, _ := s.Slice(0, s.Len())
	if !reflect.DeepEqual(before, after) {
		t.Errorf("container mutated on rejected Append (out of range): got %v, want %v", after, before)
	}

	if err := s.Extend([]uint64{4, 5}); !errors.Is(err, ErrLengthPolicyViolation) {
		t.Fatalf("expected ErrLengthPolicyViolation, got %v", err)
	}
	after, _ = s.Slice(0, s.Len())
	if !reflect.DeepEqual(before, after) {
		t.Errorf("container mutated on rejected Extend (length policy): got %v, want %v", after, before)
	}
}

func TestSequenceInsertAndPop(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(2, Unbounded(), []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}

	if err := s.Insert(1, 99); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, _ := s.Slice(0, s.Len())
	if !reflect.DeepEqual(got, []uint64{1, 99, 2, 3}) {
		t.Errorf("after Insert, got %v", got)
	}

	popped, err := s.Pop(1)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if popped != 99 {
		t.Errorf("Pop(1) = %d, want 99", popped)
	}
	got, _ = s.Slice(0, s.Len())
	if !reflect.DeepEqual(got, []uint64{1, 2, 3}) {
		t.Errorf("after Pop, got %v", got)
	}
}

func TestSequenceJSONRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(2, Unbounded(), []uint64{0, 1, 65535})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	codec := SequenceCodec{ElementWidth: 2, Policy: Unbounded()}

	j, err := codec.ToJSON(s)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := codec.FromJSON(j)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	got, _ := back.Slice(0, back.Len())
	want, _ := s.Slice(0, s.Len())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("json round trip got %v, want %v", got, want)
	}
}

func TestSequenceTruncatedBuffer(t *testing.T) {
	t.Parallel()

	s, err := NewSequence(4, Unbounded(), []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	codec := SequenceCodec{ElementWidth: 4, Policy: Unbounded()}
	encoded, err := codec.Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, _, err := codec.DecodeFrom(encoded[:len(encoded)-1], 0); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
}
