package wire

import (
	"fmt"
	"sort"
)

// DictionaryCodec implements Codec[map[K]V]: a finite mapping with
// unique keys and a deterministic encoded key order. The wire form is a
// varint entry count followed by (key, value) pairs in ascending
// sorted-key order — encoded once at encode time, so the same logical
// map always produces identical bytes regardless of Go's randomized map
// iteration order.
//
// Compare must implement the natural ordering of K's decoded
// representation (numeric for integers, lexicographic for strings;
// cmp.Compare from the standard library satisfies this for any ordered
// K). KeyName and ValueName name the fields used in the JSON form's
// list-of-records fallback (see ToJSON); they default to "key" and
// "value" when empty.
//
// When KeyCodec and ValueCodec are both recognized fixed-width unsigned
// integer codecs, or KeyCodec is [String] and ValueCodec is a
// fixed-width unsigned integer codec, Encode/Decode use an inlined fast
// path that packs bytes directly instead of delegating to the
// element codecs per entry — the two fast paths the spec calls out as
// material for throughput.
type DictionaryCodec[K comparable, V any] struct {
	KeyCodec   Codec[K]
	ValueCodec Codec[V]
	Compare    func(a, b K) int
	KeyName    string
	ValueName  string
}

func (d DictionaryCodec[K, V]) keyName() string {
	if d.KeyName != "" {
		return d.KeyName
	}
	return "key"
}

func (d DictionaryCodec[K, V]) valueName() string {
	if d.ValueName != "" {
		return d.ValueName
	}
	return "value"
}

func (d DictionaryCodec[K, V]) sortedKeys(m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return d.Compare(keys[i], keys[j]) < 0 })
	return keys
}

// fastPaths reports which, if any, of the two dictionary fast paths
// apply, and returns the capability interfaces needed to use them.
func (d DictionaryCodec[K, V]) fastPaths() (keyFW FixedWidthUint[K], valFW FixedWidthUint[V], keyIsFW, keyIsString, valIsFW bool) {
	keyFW, keyIsFW = fixedWidthUint[K](d.KeyCodec)
	valFW, valIsFW = fixedWidthUint[V](d.ValueCodec)
	_, keyIsString = any(d.KeyCodec).(String)
	return
}

func (d DictionaryCodec[K, V]) EncodedSize(m map[K]V) int {
	n := VarintSize(uint64(len(m)))
	for k, v := range m {
		n += d.KeyCodec.EncodedSize(k) + d.ValueCodec.EncodedSize(v)
	}
	return n
}

func (d DictionaryCodec[K, V]) Encode(m map[K]V) ([]byte, error) {
	buf := make([]byte, d.EncodedSize(m))
	if _, err := d.EncodeInto(m, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d DictionaryCodec[K, V]) EncodeInto(m map[K]V, buf []byte, offset int) (int, error) {
	n := d.EncodedSize(m)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: dictionary needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	pos := offset + EncodeVarintInto(uint64(len(m)), buf[offset:])

	keyFW, valFW, keyIsFW, keyIsString, valIsFW := d.fastPaths()
	for _, k := range d.sortedKeys(m) {
		v := m[k]
		switch {
		case keyIsFW && valIsFW:
			putUintLE(buf[pos:], keyFW.Width(), keyFW.ToUint64(k))
			pos += keyFW.Width()
			putUintLE(buf[pos:], valFW.Width(), valFW.ToUint64(v))
			pos += valFW.Width()

		case keyIsString && valIsFW:
			written, err := String{}.EncodeInto(any(k).(string), buf, pos)
			if err != nil {
				return 0, err
			}
			pos += written
			putUintLE(buf[pos:], valFW.Width(), valFW.ToUint64(v))
			pos += valFW.Width()

		default:
			written, err := d.KeyCodec.EncodeInto(k, buf, pos)
			if err != nil {
				return 0, err
			}
			pos += written
			written, err = d.ValueCodec.EncodeInto(v, buf, pos)
			if err != nil {
				return 0, err
			}
			pos += written
		}
	}
	return pos - offset, nil
}

func (d DictionaryCodec[K, V]) Decode(buf []byte) (map[K]V, error) {
	m, _, err := d.DecodeFrom(buf, 0)
	return m, err
}

func (d DictionaryCodec[K, V]) DecodeFrom(buf []byte, offset int) (map[K]V, int, error) {
	count, n, err := DecodeVarintFrom(buf, offset)
	if err != nil {
		return nil, 0, err
	}
	pos := offset + n
	m := make(map[K]V, count)

	keyFW, valFW, keyIsFW, keyIsString, valIsFW := d.fastPaths()
	for i := uint64(0); i < count; i++ {
		var k K
		var v V
		switch {
		case keyIsFW && valIsFW:
			raw, kn, err := fixedUintDecodeFrom(keyFW.Width(), buf, pos)
			if err != nil {
				return nil, 0, err
			}
			k = keyFW.FromUint64(raw)
			pos += kn
			raw, vn, err := fixedUintDecodeFrom(valFW.Width(), buf, pos)
			if err != nil {
				return nil, 0, err
			}
			v = valFW.FromUint64(raw)
			pos += vn

		case keyIsString && valIsFW:
			kStr, kn, err := String{}.DecodeFrom(buf, pos)
			if err != nil {
				return nil, 0, err
			}
			k = any(kStr).(K)
			pos += kn
			raw, vn, err := fixedUintDecodeFrom(valFW.Width(), buf, pos)
			if err != nil {
				return nil, 0, err
			}
			v = valFW.FromUint64(raw)
			pos += vn

		default:
			kv, kn, err := d.KeyCodec.DecodeFrom(buf, pos)
			if err != nil {
				return nil, 0, err
			}
			k = kv
			pos += kn
			vv, vn, err := d.ValueCodec.DecodeFrom(buf, pos)
			if err != nil {
				return nil, 0, err
			}
			v = vv
			pos += vn
		}
		m[k] = v
	}
	return m, pos - offset, nil
}

// ToJSON renders m as a JSON object when KeyCodec is [String], or as a
// list of {key_name, value_name} records otherwise — e.g. a dictionary
// keyed by an integer type. Any other key codec gets the list form, even
// one whose own JSON form is a string.
func (d DictionaryCodec[K, V]) ToJSON(m map[K]V) (any, error) {
	_, _, _, keyIsString, _ := d.fastPaths()
	keys := d.sortedKeys(m)

	if keyIsString {
		out := make(map[string]any, len(m))
		for _, k := range keys {
			vj, err := d.ValueCodec.ToJSON(m[k])
			if err != nil {
				return nil, err
			}
			out[any(k).(string)] = vj
		}
		return out, nil
	}

	out := make([]any, 0, len(m))
	for _, k := range keys {
		kj, err := d.KeyCodec.ToJSON(k)
		if err != nil {
			return nil, err
		}
		vj, err := d.ValueCodec.ToJSON(m[k])
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{d.keyName(): kj, d.valueName(): vj})
	}
	return out, nil
}

func (d DictionaryCodec[K, V]) FromJSON(j any) (map[K]V, error) {
	_, _, _, keyIsString, _ := d.fastPaths()

	if keyIsString {
		obj, ok := j.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: string-keyed dictionary expects a JSON object, got %T", ErrMalformed, j)
		}
		m := make(map[K]V, len(obj))
		for k, vj := range obj {
			v, err := d.ValueCodec.FromJSON(vj)
			if err != nil {
				return nil, err
			}
			m[any(k).(K)] = v
		}
		return m, nil
	}

	items, ok := j.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: dictionary expects a JSON array of records, got %T", ErrMalformed, j)
	}
	m := make(map[K]V, len(items))
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: dictionary record must be a JSON object, got %T", ErrMalformed, item)
		}
		k, err := d.KeyCodec.FromJSON(rec[d.keyName()])
		if err != nil {
			return nil, err
		}
		v, err := d.ValueCodec.FromJSON(rec[d.valueName()])
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
