// Package wire implements a typed binary serialization core: a small set
// of value types sharing one codec contract that produces a deterministic,
// length-prefixed binary encoding and a parallel JSON form.
//
// Every type in this package follows the same shape:
//
//	EncodedSize(v T) int
//	Encode(v T) ([]byte, error)
//	EncodeInto(v T, buf []byte, offset int) (int, error)
//	Decode(buf []byte) (T, error)
//	DecodeFrom(buf []byte, offset int) (T, int, error)
//	ToJSON(v T) (any, error)
//	FromJSON(j any) (T, error)
//
// captured by the [Codec] interface. Composite codecs (dictionaries,
// structures, options, choices) hold their element codecs either by static
// generic type parameter, or — where the elements are heterogeneous, as in
// a structure's fields or a choice's alternatives — behind the type-erased
// [AnyCodec] interface produced by [Erase].
//
// All multi-byte integers on the wire are little-endian. There is no
// self-describing envelope: the wire grammar of a message is entirely
// determined by the root codec used to decode it.
//
// This package has no dependency beyond the standard library. Structure
// and enum declaration surfaces, content fingerprinting, and interop
// transcoding live in sibling packages (lib/wireschema, lib/wirehash,
// lib/wiretranscode) so that the core codec has nothing to import.
package wire
