package wireschema

import "errors"

var (
	// ErrUnknownType is returned when a field or alternative declaration
	// names a type that is neither a built-in primitive nor
	// declared elsewhere in the document.
	ErrUnknownType = errors.New("wireschema: unknown type")

	// ErrDuplicateName is returned when a structure/choice name, field
	// name, or alternative name is declared more than once where
	// uniqueness is required.
	ErrDuplicateName = errors.New("wireschema: duplicate name")

	// ErrInvalidDeclaration is returned for a structurally invalid
	// document: an empty field list, a non-sequential alternative tag,
	// or a name that is empty.
	ErrInvalidDeclaration = errors.New("wireschema: invalid declaration")
)
