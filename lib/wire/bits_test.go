package wire

import (
	"errors"
	"reflect"
	"testing"
)

func boolsFrom(spec string) []bool {
	out := make([]bool, len(spec))
	for i, c := range spec {
		out[i] = c == '1'
	}
	return out
}

func TestBitsPackingLSBFirst(t *testing.T) {
	t.Parallel()

	// "10110000" with logical bit 0 first: bits 0, 2, 3 set among the
	// first eight. LSB-first places logical bit p at wire bit p%8, so
	// byte 0 should be 0b00001101 = 0x0D (bits 0, 2, 3 set).
	initial := boolsFrom("10110000")
	v, err := NewBits(LSBFirst, Fixed(8), initial)
	if err != nil {
		t.Fatalf("NewBits: %v", err)
	}
	codec := BitsCodec{Order: LSBFirst, Policy: Fixed(8)}
	encoded, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 1 {
		t.Fatalf("expected 1 packed byte, got %d", len(encoded))
	}
	if encoded[0] != 0x0D {
		t.Errorf("LSB-first packing of %v = %#02x, want 0x0D", initial, encoded[0])
	}
}

func TestBitsPackingMSBFirst(t *testing.T) {
	t.Parallel()

	initial := boolsFrom("10110000")
	v, err := NewBits(MSBFirst, Fixed(8), initial)
	if err != nil {
		t.Fatalf("NewBits: %v", err)
	}
	codec := BitsCodec{Order: MSBFirst, Policy: Fixed(8)}
	encoded, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// MSB-first places logical bit 0 at wire bit 7: 1011_0000 packs
	// directly into the byte's bit pattern top-down.
	if encoded[0] != 0b10110000 {
		t.Errorf("MSB-first packing of %v = %#08b, want 0b10110000", initial, encoded[0])
	}
}

func TestBitsRoundTripNonByteAligned(t *testing.T) {
	t.Parallel()

	for _, order := range []BitOrder{LSBFirst, MSBFirst} {
		for _, n := range []int{0, 1, 3, 7, 8, 9, 15, 17} {
			initial := make([]bool, n)
			for i := range initial {
				initial[i] = i%3 == 0
			}
			v, err := NewBits(order, Bounded(0, 32), initial)
			if err != nil {
				t.Fatalf("order %v len %d: NewBits: %v", order, n, err)
			}
			codec := BitsCodec{Order: order, Policy: Bounded(0, 32)}

			encoded, err := codec.Encode(v)
			if err != nil {
				t.Fatalf("order %v len %d: Encode: %v", order, n, err)
			}
			decoded, _, err := codec.DecodeFrom(encoded, 0)
			if err != nil {
				t.Fatalf("order %v len %d: DecodeFrom: %v", order, n, err)
			}
			if decoded.Len() != n {
				t.Fatalf("order %v len %d: decoded length %d", order, n, decoded.Len())
			}
			for i := 0; i < n; i++ {
				got, _ := decoded.Get(i)
				if got != initial[i] {
					t.Errorf("order %v len %d: bit %d = %v, want %v", order, n, i, got, initial[i])
				}
			}

			j, err := codec.ToJSON(v)
			if err != nil {
				t.Fatalf("order %v len %d: ToJSON: %v", order, n, err)
			}
			back, err := codec.FromJSON(j)
			if err != nil {
				t.Fatalf("order %v len %d: FromJSON: %v", order, n, err)
			}
			if back.Len() != n {
				t.Fatalf("order %v len %d: json round trip length %d", order, n, back.Len())
			}
			for i := 0; i < n; i++ {
				got, _ := back.Get(i)
				if got != initial[i] {
					t.Errorf("order %v len %d: json round trip bit %d = %v, want %v", order, n, i, got, initial[i])
				}
			}
		}
	}
}

func TestBitsMutation(t *testing.T) {
	t.Parallel()

	v, err := NewBits(LSBFirst, Unbounded(), boolsFrom("101"))
	if err != nil {
		t.Fatalf("NewBits: %v", err)
	}

	if err := v.Append(true); err != nil {
		t.Fatalf("Append: %v", err)
	}
	slice, err := v.Slice(0, v.Len())
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if !reflect.DeepEqual(slice, boolsFrom("1011")) {
		t.Errorf("after Append, got %v", slice)
	}

	if err := v.Insert(0, false); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	slice, _ = v.Slice(0, v.Len())
	if !reflect.DeepEqual(slice, boolsFrom("01011")) {
		t.Errorf("after Insert, got %v", slice)
	}

	popped, err := v.Pop(0)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if popped != false {
		t.Errorf("Pop(0) = %v, want false", popped)
	}
	slice, _ = v.Slice(0, v.Len())
	if !reflect.DeepEqual(slice, boolsFrom("1011")) {
		t.Errorf("after Pop, got %v", slice)
	}
}

func TestBitsLengthPolicyViolationLeavesUnchanged(t *testing.T) {
	t.Parallel()

	v, err := NewBits(LSBFirst, Fixed(4), boolsFrom("1010"))
	if err != nil {
		t.Fatalf("NewBits: %v", err)
	}
	before, _ := v.Slice(0, v.Len())

	if err := v.Append(true); !errors.Is(err, ErrLengthPolicyViolation) {
		t.Fatalf("expected ErrLengthPolicyViolation, got %v", err)
	}
	after, _ := v.Slice(0, v.Len())
	if !reflect.DeepEqual(before, after) {
		t.Errorf("container mutated on rejected Append: got %v, want %v", after, before)
	}
}

func TestBitsCodecOrderMismatch(t *testing.T) {
	t.Parallel()

	v, err := NewBits(LSBFirst, Fixed(8), boolsFrom("10000000"))
	if err != nil {
		t.Fatalf("NewBits: %v", err)
	}
	codec := BitsCodec{Order: MSBFirst, Policy: Fixed(8)}
	if _, err := codec.Encode(v); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}
