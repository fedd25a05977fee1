package wire

import (
	"errors"
	"testing"
)

func TestNullCodec(t *testing.T) {
	t.Parallel()

	if n := (NullCodec{}).EncodedSize(Null{}); n != 0 {
		t.Errorf("EncodedSize(Null{}) = %d, want 0", n)
	}
	encoded, err := (NullCodec{}).Encode(Null{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 0 {
		t.Errorf("Encode(Null{}) produced %d bytes, want 0", len(encoded))
	}
	decoded, n, err := (NullCodec{}).DecodeFrom(nil, 0)
	if err != nil {
		t.Fatalf("DecodeFrom: %v", err)
	}
	if decoded != (Null{}) || n != 0 {
		t.Errorf("DecodeFrom(nil, 0) = %v, %d, want Null{}, 0", decoded, n)
	}

	j, err := (NullCodec{}).ToJSON(Null{})
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if j != nil {
		t.Errorf("ToJSON(Null{}) = %v, want nil", j)
	}
	back, err := (NullCodec{}).FromJSON(nil)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if back != (Null{}) {
		t.Errorf("FromJSON(nil) = %v, want Null{}", back)
	}
}

func TestOptionRoundTripAbsentAndPresent(t *testing.T) {
	t.Parallel()

	codec := OptionCodec[uint32]{Elem: Uint32{}}

	encoded, err := codec.Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}
	if len(encoded) != 1 || encoded[0] != 0 {
		t.Fatalf("absent option should encode to a single 0 byte, got % X", encoded)
	}
	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded != nil {
		t.Errorf("expected nil, got %v", *decoded)
	}

	v := uint32(42)
	encoded, err = codec.Encode(&v)
	if err != nil {
		t.Fatalf("Encode(&v): %v", err)
	}
	if encoded[0] != 1 {
		t.Fatalf("present option should start with discriminator 1, got %d", encoded[0])
	}
	decoded, err = codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded == nil || *decoded != v {
		t.Errorf("expected %d, got %v", v, decoded)
	}
}

func TestOptionJSONRoundTrip(t *testing.T) {
	t.Parallel()

	codec := OptionCodec[string]{Elem: String{}}

	j, err := codec.ToJSON(nil)
	if err != nil {
		t.Fatalf("ToJSON(nil): %v", err)
	}
	if j != nil {
		t.Errorf("ToJSON(nil) = %v, want nil", j)
	}
	back, err := codec.FromJSON(nil)
	if err != nil {
		t.Fatalf("FromJSON(nil): %v", err)
	}
	if back != nil {
		t.Errorf("FromJSON(nil) = %v, want nil", back)
	}

	s := "present"
	j, err = codec.ToJSON(&s)
	if err != nil {
		t.Fatalf("ToJSON(&s): %v", err)
	}
	back, err = codec.FromJSON(j)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if back == nil || *back != s {
		t.Errorf("expected %q, got %v", s, back)
	}
}

func TestOptionDecodeInvalidDiscriminator(t *testing.T) {
	t.Parallel()

	codec := OptionCodec[uint8]{Elem: Uint8{}}
	if _, _, err := codec.DecodeFrom([]byte{2, 0}, 0); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for discriminator 2, got %v", err)
	}
}

func TestOptionTruncatedBuffer(t *testing.T) {
	t.Parallel()

	codec := OptionCodec[uint32]{Elem: Uint32{}}
	if _, _, err := codec.DecodeFrom(nil, 0); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("expected ErrBufferTooSmall for empty buffer, got %v", err)
	}
}
