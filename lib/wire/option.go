package wire

import "fmt"

// OptionCodec implements Codec[*T] for "exactly one of absent or
// present(T)": a nil *T is absent. On the wire this is one
// discriminator byte (0 absent, 1 present) followed by the encoded T
// when present.
type OptionCodec[T any] struct {
	Elem Codec[T]
}

func (o OptionCodec[T]) EncodedSize(v *T) int {
	if v == nil {
		return 1
	}
	return 1 + o.Elem.EncodedSize(*v)
}

func (o OptionCodec[T]) Encode(v *T) ([]byte, error) {
	buf := make([]byte, o.EncodedSize(v))
	if _, err := o.EncodeInto(v, buf, 0); err != nil {
		return nil, err
	}
	return buf, nil
}

func (o OptionCodec[T]) EncodeInto(v *T, buf []byte, offset int) (int, error) {
	n := o.EncodedSize(v)
	if offset+n > len(buf) {
		return 0, fmt.Errorf("%w: option needs %d bytes at offset %d", ErrBufferTooSmall, n, offset)
	}
	if v == nil {
		buf[offset] = 0
		return 1, nil
	}
	buf[offset] = 1
	written, err := o.Elem.EncodeInto(*v, buf, offset+1)
	if err != nil {
		return 0, err
	}
	return 1 + written, nil
}

func (o OptionCodec[T]) Decode(buf []byte) (*T, error) {
	v, _, err := o.DecodeFrom(buf, 0)
	return v, err
}

func (o OptionCodec[T]) DecodeFrom(buf []byte, offset int) (*T, int, error) {
	if offset < 0 || offset >= len(buf) {
		return nil, 0, fmt.Errorf("%w: option needs a discriminator byte at offset %d", ErrBufferTooSmall, offset)
	}
	switch buf[offset] {
	case 0:
		return nil, 1, nil
	case 1:
		elem, n, err := o.Elem.DecodeFrom(buf, offset+1)
		if err != nil {
			return nil, 0, err
		}
		v := new(T)
		*v = elem
		return v, 1 + n, nil
	default:
		return nil, 0, fmt.Errorf("%w: option discriminator %d is neither 0 nor 1", ErrMalformed, buf[offset])
	}
}

func (o OptionCodec[T]) ToJSON(v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	return o.Elem.ToJSON(*v)
}

func (o OptionCodec[T]) FromJSON(j any) (*T, error) {
	if j == nil {
		return nil, nil
	}
	elem, err := o.Elem.FromJSON(j)
	if err != nil {
		return nil, err
	}
	v := new(T)
	*v = elem
	return v, nil
}
