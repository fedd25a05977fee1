// Package wiretranscode converts between this repository's native wire
// format and CBOR (RFC 8949), by round-tripping through a value's
// canonical JSON form ([wire.Codec.ToJSON] / [wire.Codec.FromJSON])
// rather than through the wire bytes directly. This lets any system
// that already speaks CBOR interoperate with a tybin-encoded value
// without linking against the binary codec.
package wiretranscode

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/latticeware/tybin/lib/wire"
)

// encMode is configured for Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer form, no indefinite-length
// items. The same logical JSON value always produces identical CBOR
// bytes, mirroring the determinism [wire.Codec] itself guarantees for
// the binary form.
var encMode cbor.EncMode

// decMode decodes any-typed CBOR maps into map[string]any rather than
// CBOR's default map[any]any, matching the shape [wire.Codec.FromJSON]
// expects.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wiretranscode: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("wiretranscode: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalJSONForm encodes a value already in its [wire.Codec.ToJSON]
// form to deterministic CBOR.
func MarshalJSONForm(j any) ([]byte, error) {
	return encMode.Marshal(j)
}

// UnmarshalJSONForm decodes CBOR bytes back to a value shaped like a
// [wire.Codec.ToJSON] result, suitable for passing to
// [wire.Codec.FromJSON].
func UnmarshalJSONForm(data []byte) (any, error) {
	var j any
	if err := decMode.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return j, nil
}

// Encode converts v to CBOR via codec's JSON form: ToJSON then a
// deterministic CBOR marshal.
func Encode[T any](codec wire.Codec[T], v T) ([]byte, error) {
	j, err := codec.ToJSON(v)
	if err != nil {
		return nil, err
	}
	return MarshalJSONForm(j)
}

// Decode parses CBOR bytes as codec's JSON form and converts back to T
// via FromJSON.
func Decode[T any](codec wire.Codec[T], data []byte) (T, error) {
	j, err := UnmarshalJSONForm(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return codec.FromJSON(j)
}
