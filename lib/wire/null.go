package wire

// Null is the unit value: a type with exactly one inhabitant, encoding
// to zero bytes. It is useful as the payload codec of a [ChoiceType]
// alternative that carries no data.
type Null struct{}

// NullCodec implements Codec[Null].
type NullCodec struct{}

func (NullCodec) EncodedSize(Null) int                        { return 0 }
func (NullCodec) Encode(Null) ([]byte, error)                 { return []byte{}, nil }
func (NullCodec) EncodeInto(Null, []byte, int) (int, error)   { return 0, nil }
func (NullCodec) Decode([]byte) (Null, error)                 { return Null{}, nil }
func (NullCodec) DecodeFrom([]byte, int) (Null, int, error)   { return Null{}, 0, nil }
func (NullCodec) ToJSON(Null) (any, error)       { return nil, nil }
func (NullCodec) FromJSON(any) (Null, error)     { return Null{}, nil }
