package wire

import "errors"

// The five error conditions defined by the codec contract. Every error
// returned by this package wraps one of these sentinels, so callers
// branch on behavior with errors.Is rather than string matching.
var (
	// ErrBufferTooSmall is returned when an output buffer is smaller than
	// EncodedSize requires, or an input buffer is exhausted mid-parse.
	ErrBufferTooSmall = errors.New("wire: buffer too small")

	// ErrMalformed is returned for input that cannot be a valid encoding
	// of any value: an oversized varint, invalid UTF-8, an unknown
	// discriminator, or a non-well-formed JSON mapping.
	ErrMalformed = errors.New("wire: malformed encoding")

	// ErrLengthPolicyViolation is returned when a container's length
	// falls outside its declared [min, max] (or fixed N).
	ErrLengthPolicyViolation = errors.New("wire: length policy violation")

	// ErrTypeMismatch is returned when a supplied element is not an
	// instance of its declared element type.
	ErrTypeMismatch = errors.New("wire: type mismatch")

	// ErrOutOfRange is returned when an integer value exceeds its
	// declared byte width.
	ErrOutOfRange = errors.New("wire: value out of range")
)
