package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarintWorkedExamples(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value uint64
		bytes []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"max single byte", 127, []byte{0x7F}},
		{"first two-byte value", 128, []byte{0x80, 0x80}},
		{"max seven-byte payload", 1<<56 - 1, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"first nine-byte value", 1 << 56, []byte{0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}},
		{"max uint64", 1<<64 - 1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if size := VarintSize(c.value); size != len(c.bytes) {
				t.Errorf("VarintSize(%d) = %d, want %d", c.value, size, len(c.bytes))
			}

			got := AppendVarint(nil, c.value)
			if !bytes.Equal(got, c.bytes) {
				t.Errorf("encode(%d) = % X, want % X", c.value, got, c.bytes)
			}

			decoded, n, err := DecodeVarintFrom(c.bytes, 0)
			if err != nil {
				t.Fatalf("decode(% X): %v", c.bytes, err)
			}
			if decoded != c.value {
				t.Errorf("decode(% X) = %d, want %d", c.bytes, decoded, c.value)
			}
			if n != len(c.bytes) {
				t.Errorf("decode(% X) consumed %d bytes, want %d", c.bytes, n, len(c.bytes))
			}
		})
	}
}

func TestVarintSizeMonotonic(t *testing.T) {
	t.Parallel()

	boundaries := []uint64{0, 1<<7 - 1, 1 << 7, 1<<14 - 1, 1 << 14, 1<<56 - 1, 1 << 56, 1<<64 - 1}
	for i := 1; i < len(boundaries); i++ {
		if VarintSize(boundaries[i]) < VarintSize(boundaries[i-1]) {
			t.Errorf("VarintSize regressed between %d (%d bytes) and %d (%d bytes)",
				boundaries[i-1], VarintSize(boundaries[i-1]), boundaries[i], VarintSize(boundaries[i]))
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	t.Parallel()

	values := []uint64{0, 1, 63, 64, 127, 128, 129, 1000, 1 << 20, 1<<56 - 1, 1 << 56, 1<<63 - 1, 1<<64 - 1}
	codec := Varint{}
	for _, v := range values {
		encoded, err := codec.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		decoded, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(% X): %v", encoded, err)
		}
		if decoded != v {
			t.Errorf("round trip %d -> % X -> %d", v, encoded, decoded)
		}

		j, err := codec.ToJSON(v)
		if err != nil {
			t.Fatalf("ToJSON(%d): %v", v, err)
		}
		back, err := codec.FromJSON(j)
		if err != nil {
			t.Fatalf("FromJSON(%v): %v", j, err)
		}
		if back != v {
			t.Errorf("json round trip %d -> %v -> %d", v, j, back)
		}
	}
}

func TestVarintRejectsNonCanonicalEncoding(t *testing.T) {
	t.Parallel()

	// 128 canonically encodes as {0x80, 0x80}. A two-byte form carrying a
	// value that fits in one byte is non-canonical and must be rejected.
	nonCanonical := []byte{0x80, 0x00}
	if _, _, err := DecodeVarintFrom(nonCanonical, 0); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for non-canonical varint, got %v", err)
	}
}

func TestVarintTruncatedBuffer(t *testing.T) {
	t.Parallel()

	t.Run("empty buffer", func(t *testing.T) {
		t.Parallel()
		if _, _, err := DecodeVarintFrom(nil, 0); !errors.Is(err, ErrBufferTooSmall) {
			t.Fatalf("expected ErrBufferTooSmall, got %v", err)
		}
	})

	t.Run("multi-byte tag with missing continuation bytes", func(t *testing.T) {
		t.Parallel()
		if _, _, err := DecodeVarintFrom([]byte{0x80}, 0); !errors.Is(err, ErrBufferTooSmall) {
			t.Fatalf("expected ErrBufferTooSmall, got %v", err)
		}
	})

	t.Run("nine-byte marker with missing payload", func(t *testing.T) {
		t.Parallel()
		if _, _, err := DecodeVarintFrom([]byte{0xFF, 0x01, 0x02}, 0); !errors.Is(err, ErrBufferTooSmall) {
			t.Fatalf("expected ErrBufferTooSmall, got %v", err)
		}
	})
}

func TestVarintEncodeIntoTooSmall(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 1)
	if _, err := (Varint{}).EncodeInto(1<<20, buf, 0); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}
