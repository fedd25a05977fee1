package wire

import "fmt"

// Field is one member of a [StructType]: a name and the type-erased
// codec for its value.
type Field struct {
	Name  string
	Codec AnyCodec
}

// StructValue is the value of a structure type: one value per declared
// field, in field order. Values[i] holds the value for Fields[i].
type StructValue struct {
	Values []any
}

// StructType implements a fixed-arity, heterogeneous, ordered record.
// Unlike [DictionaryCodec], field identity is positional, not sorted:
// the wire encoding is simply each field's own encoding, concatenated in
// declaration order, with no length prefix and no per-field tag —
// decoding a structure requires knowing its type.
type StructType struct {
	Fields []Field
}

func (s StructType) checkArity(v StructValue) error {
	if len(v.Values) != len(s.Fields) {
		return fmt.Errorf("%w: structure has %d fields, value has %d", ErrMalformed, len(s.Fields), len(v.Values))
	}
	return nil
}

func (s StructType) EncodedSize(v StructValue) int {
	if err := s.checkArity(v); err != nil {
		return 0
	}
	n := 0
	for i, f := range s.Fields {
		n += f.Codec.EncodedSizeAny(v.Values[i])
	}
	return n
}

func (s StructType) Encode(v StructValue) ([]byte, error) {
	buf := make([]byte, s.EncodedSize(v))
	if _, err := s.EncodeInto(v, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s StructType) EncodeInto(v StructValue, buf []byte, offset int) (int, error) {
	if err := s.checkArity(v); err != nil {
		return 0, err
	}
	pos := offset
	for i, f := range s.Fields {
		written, err := f.Codec.EncodeIntoAny(v.Values[i], buf, pos)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", f.Name, err)
		}
		pos += written
	}
	return pos - offset, nil
}

func (s StructType) Decode(buf []byte) (StructValue, error) {
	v, _, err := s.DecodeFrom(buf, 0)
	return v, err
}

func (s StructType) DecodeFrom(buf []byte, offset int) (StructValue, int, error) {
	values := make([]any, len(s.Fields))
	pos := offset
	for i, f := range s.Fields {
		value, n, err := f.Codec.DecodeFromAny(buf, pos)
		if err != nil {
			return StructValue{}, 0, fmt.Errorf("field %q: %w", f.Name, err)
		}
		values[i] = value
		pos += n
	}
	return StructValue{Values: values}, pos - offset, nil
}

// ToJSON renders v as a JSON object keyed by field name.
func (s StructType) ToJSON(v StructValue) (any, error) {
	if err := s.checkArity(v); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(s.Fields))
	for i, f := range s.Fields {
		j, err := f.Codec.ToJSONAny(v.Values[i])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out[f.Name] = j
	}
	return out, nil
}

// FromJSON requires the JSON object to carry every declared field by
// name; there is no defaulting for a missing field.
func (s StructType) FromJSON(j any) (StructValue, error) {
	obj, ok := j.(map[string]any)
	if !ok {
		return StructValue{}, fmt.Errorf("%w: structure expects a JSON object, got %T", ErrMalformed, j)
	}
	values := make([]any, len(s.Fields))
	for i, f := range s.Fields {
		raw, present := obj[f.Name]
		if !present {
			return StructValue{}, fmt.Errorf("%w: structure JSON object missing field %q", ErrMalformed, f.Name)
		}
		value, err := f.Codec.FromJSONAny(raw)
		if err != nil {
			return StructValue{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		values[i] = value
	}
	return StructValue{Values: values}, nil
}
