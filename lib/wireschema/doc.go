// Package wireschema loads structure and choice type declarations from a
// YAML document and compiles them into wire.AnyCodec values, so a wire
// layout can be declared as data rather than as Go source.
//
// A schema document is loaded from a single file specified by either the
// TYBIN_SCHEMA environment variable (via [Load]) or an explicit path
// (via [LoadFile]). There are no fallbacks or automatic discovery: an
// unset TYBIN_SCHEMA fails rather than searching a default location.
//
// Field and alternative types are named either by one of the built-in
// primitive names (uint8, uint16, uint32, uint64, int8, int16, int32,
// int64, varint, string, bytes, null) or by the name of another
// structure or choice declared in the same document, including the
// declaring type itself — type resolution is lazy, so mutually
// recursive and self-referential declarations (a list node whose "rest"
// field is a choice between an end marker and another list node)
// resolve correctly regardless of declaration order.
//
// Key exports:
//
//   - [Document] -- the parsed YAML shape: named Structures and Choices
//   - [Schema] -- the compiled, queryable result of [Compile]
//   - [Load] and [LoadFile] -- the two entry points for loading a document
package wireschema
