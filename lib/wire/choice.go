package wire

import "fmt"

// Alternative names one arm of a [ChoiceType]: its wire tag is its
// position in the type's Alternatives slice.
type Alternative struct {
	Name  string
	Codec AnyCodec
}

// ChoiceValue is the value of a choice type: exactly one alternative,
// selected by Tag (0-based index into the owning [ChoiceType]'s
// Alternatives), holding Value.
type ChoiceValue struct {
	Tag   int
	Value any
}

// ChoiceType implements a tagged union over heterogeneous alternatives.
// On the wire: a varint discriminator (the alternative's index) followed
// by that alternative's own encoding. An unrecognized discriminator is
// fatal on decode.
type ChoiceType struct {
	Alternatives []Alternative
}

func (c ChoiceType) alt(tag int) (Alternative, error) {
	if tag < 0 || tag >= len(c.Alternatives) {
		return Alternative{}, fmt.Errorf("%w: choice tag %d has no alternative (%d defined)", ErrMalformed, tag, len(c.Alternatives))
	}
	return c.Alternatives[tag], nil
}

func (c ChoiceType) EncodedSize(v ChoiceValue) int {
	alt, err := c.alt(v.Tag)
	if err != nil {
		return 0
	}
	return VarintSize(uint64(v.Tag)) + alt.Codec.EncodedSizeAny(v.Value)
}

func (c ChoiceType) Encode(v ChoiceValue) ([]byte, error) {
	buf := make([]byte, c.EncodedSize(v))
	if _, err := c.EncodeInto(v, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c ChoiceType) EncodeInto(v ChoiceValue, buf []byte, offset int) (int, error) {
	alt, err := c.alt(v.Tag)
	if err != nil {
		return 0, err
	}
	n := c.EncodedSize(v)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: choice needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	written := EncodeVarintInto(uint64(v.Tag), buf[offset:])
	payloadWritten, err := alt.Codec.EncodeIntoAny(v.Value, buf, offset+written)
	if err != nil {
		return 0, err
	}
	return written + payloadWritten, nil
}

func (c ChoiceType) Decode(buf []byte) (ChoiceValue, error) {
	v, _, err := c.DecodeFrom(buf, 0)
	return v, err
}

func (c ChoiceType) DecodeFrom(buf []byte, offset int) (ChoiceValue, int, error) {
	tag64, n, err := DecodeVarintFrom(buf, offset)
	if err != nil {
		return ChoiceValue{}, 0, err
	}
	tag := int(tag64)
	alt, err := c.alt(tag)
	if err != nil {
		return ChoiceValue{}, 0, err
	}
	value, payloadN, err := alt.Codec.DecodeFromAny(buf, offset+n)
	if err != nil {
		return ChoiceValue{}, 0, err
	}
	return ChoiceValue{Tag: tag, Value: value}, n + payloadN, nil
}

func (c ChoiceType) ToJSON(v ChoiceValue) (any, error) {
	alt, err := c.alt(v.Tag)
	if err != nil {
		return nil, err
	}
	inner, err := alt.Codec.ToJSONAny(v.Value)
	if err != nil {
		return nil, err
	}
	return map[string]any{"tag": alt.Name, "value": inner}, nil
}

func (c ChoiceType) FromJSON(j any) (ChoiceValue, error) {
	obj, ok := j.(map[string]any)
	if !ok {
		return ChoiceValue{}, fmt.Errorf("%w: choice expects a JSON object with tag/value, got %T", ErrMalformed, j)
	}
	name, ok := obj["tag"].(string)
	if !ok {
		return ChoiceValue{}, fmt.Errorf("%w: choice object missing string \"tag\"", ErrMalformed)
	}
	for i, alt := range c.Alternatives {
		if alt.Name != name {
			continue
		}
		value, err := alt.Codec.FromJSONAny(obj["value"])
		if err != nil {
			return ChoiceValue{}, err
		}
		return ChoiceValue{Tag: i, Value: value}, nil
	}
	return ChoiceValue{}, fmt.Errorf("%w: choice has no alternative named %q", ErrMalformed, name)
}
