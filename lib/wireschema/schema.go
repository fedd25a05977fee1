package wireschema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/latticeware/tybin/lib/wire"
)

// FieldDecl declares one field of a structure: its name and the name of
// its wire type (a primitive or another declared type).
type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// StructureDecl declares a fixed-arity, ordered record type. Field order
// in the document is the field order on the wire.
type StructureDecl struct {
	Fields []FieldDecl `yaml:"fields"`
}

// AlternativeDecl declares one arm of a choice type. Tag must equal the
// alternative's zero-based position in the enclosing declaration's
// Alternatives list; it is required in the document as an explicit,
// auditable check against reordering, not inferred silently.
type AlternativeDecl struct {
	Name string `yaml:"name"`
	Tag  int    `yaml:"tag"`
	Type string `yaml:"type"`
}

// ChoiceDecl declares a tagged union type.
type ChoiceDecl struct {
	Alternatives []AlternativeDecl `yaml:"alternatives"`
}

// Document is the top-level shape of a schema YAML file: named structure
// and choice declarations. A name may appear in only one of the two
// maps.
type Document struct {
	Structures map[string]StructureDecl `yaml:"structures"`
	Choices    map[string]ChoiceDecl    `yaml:"choices"`
}

// primitiveCodecs are the built-in leaf types every schema document may
// reference without declaring them.
func primitiveCodecs() map[string]wire.AnyCodec {
	return map[string]wire.AnyCodec{
		"uint8":  wire.Erase[uint8](wire.Uint8{}),
		"uint16": wire.Erase[uint16](wire.Uint16{}),
		"uint32": wire.Erase[uint32](wire.Uint32{}),
		"uint64": wire.Erase[uint64](wire.Uint64{}),
		"int8":   wire.Erase[int8](wire.Int8{}),
		"int16":  wire.Erase[int16](wire.Int16{}),
		"int32":  wire.Erase[int32](wire.Int32{}),
		"int64":  wire.Erase[int64](wire.Int64{}),
		"varint": wire.Erase[uint64](wire.Varint{}),
		"string": wire.Erase[string](wire.String{}),
		"bytes":  wire.Erase[[]byte](wire.VariableBytes{}),
		"null":   wire.Erase[wire.Null](wire.NullCodec{}),
	}
}

// Schema is a compiled [Document]: every declared structure and choice
// resolved to a [wire.AnyCodec], plus the concrete [wire.StructType] /
// [wire.ChoiceType] for callers that need the typed form.
type Schema struct {
	entries    map[string]wire.AnyCodec
	structures map[string]wire.StructType
	choices    map[string]wire.ChoiceType
}

// Lookup returns the compiled codec for a declared or primitive type
// name.
func (s *Schema) Lookup(name string) (wire.AnyCodec, bool) {
	c, ok := s.entries[name]
	return c, ok
}

// StructureType returns the compiled structure type declared under name.
func (s *Schema) StructureType(name string) (wire.StructType, bool) {
	t, ok := s.structures[name]
	return t, ok
}

// ChoiceType returns the compiled choice type declared under name.
func (s *Schema) ChoiceType(name string) (wire.ChoiceType, bool) {
	t, ok := s.choices[name]
	return t, ok
}

// Names returns the declared (non-primitive) type names, sorted neither
// guaranteed nor required — callers that need a stable order should sort
// the result themselves.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.structures)+len(s.choices))
	for name := range s.structures {
		names = append(names, name)
	}
	for name := range s.choices {
		names = append(names, name)
	}
	return names
}

// typeRef is a [wire.AnyCodec] that looks up the named entry in a
// schema's registry on every use rather than at construction time. This
// is what makes recursive and forward-referencing declarations work: a
// structure's field can name the structure itself, or a type declared
// later in the same document, because the lookup happens when a value is
// actually encoded or decoded, by which point the whole document has
// been compiled.
type typeRef struct {
	schema *Schema
	name   string
}

func (r typeRef) resolve() (wire.AnyCodec, error) {
	c, ok := r.schema.entries[r.name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, r.name)
	}
	return c, nil
}

func (r typeRef) EncodedSizeAny(v any) int {
	c, err := r.resolve()
	if err != nil {
		return 0
	}
	return c.EncodedSizeAny(v)
}

func (r typeRef) EncodeAny(v any) ([]byte, error) {
	c, err := r.resolve()
	if err != nil {
		return nil, err
	}
	return c.EncodeAny(v)
}

func (r typeRef) EncodeIntoAny(v any, buf []byte, offset int) (int, error) {
	c, err := r.resolve()
	if err != nil {
		return 0, err
	}
	return c.EncodeIntoAny(v, buf, offset)
}

func (r typeRef) DecodeAny(buf []byte) (any, error) {
	c, err := r.resolve()
	if err != nil {
		return nil, err
	}
	return c.DecodeAny(buf)
}

func (r typeRef) DecodeFromAny(buf []byte, offset int) (any, int, error) {
	c, err := r.resolve()
	if err != nil {
		return nil, 0, err
	}
	return c.DecodeFromAny(buf, offset)
}

func (r typeRef) ToJSONAny(v any) (any, error) {
	c, err := r.resolve()
	if err != nil {
		return nil, err
	}
	return c.ToJSONAny(v)
}

func (r typeRef) FromJSONAny(j any) (any, error) {
	c, err := r.resolve()
	if err != nil {
		return nil, err
	}
	return c.FromJSONAny(j)
}

// Compile validates doc and resolves every declared structure and choice
// to a [wire.AnyCodec]. Field and alternative types are checked against
// the set of primitive and declared names before any codec is built, so
// a typo in a type name is reported as [ErrUnknownType] rather than
// deferred to first use.
func Compile(doc *Document) (*Schema, error) {
	if err := validateNames(doc); err != nil {
		return nil, err
	}

	schema := &Schema{
		entries:    primitiveCodecs(),
		structures: make(map[string]wire.StructType, len(doc.Structures)),
		choices:    make(map[string]wire.ChoiceType, len(doc.Choices)),
	}

	known := make(map[string]struct{}, len(schema.entries)+len(doc.Structures)+len(doc.Choices))
	for name := range schema.entries {
		known[name] = struct{}{}
	}
	for name := range doc.Structures {
		known[name] = struct{}{}
	}
	for name := range doc.Choices {
		known[name] = struct{}{}
	}

	for name, decl := range doc.Structures {
		if len(decl.Fields) == 0 {
			return nil, fmt.Errorf("%w: structure %q has no fields", ErrInvalidDeclaration, name)
		}
		fields := make([]wire.Field, len(decl.Fields))
		seen := make(map[string]struct{}, len(decl.Fields))
		for i, f := range decl.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("%w: structure %q field %d has no name", ErrInvalidDeclaration, name, i)
			}
			if _, dup := seen[f.Name]; dup {
				return nil, fmt.Errorf("%w: structure %q field %q", ErrDuplicateName, name, f.Name)
			}
			seen[f.Name] = struct{}{}
			if _, ok := known[f.Type]; !ok {
				return nil, fmt.Errorf("%w: structure %q field %q references %q", ErrUnknownType, name, f.Name, f.Type)
			}
			fields[i] = wire.Field{Name: f.Name, Codec: typeRef{schema: schema, name: f.Type}}
		}
		structType := wire.StructType{Fields: fields}
		schema.structures[name] = structType
		schema.entries[name] = wire.Erase[wire.StructValue](structType)
	}

	for name, decl := range doc.Choices {
		if len(decl.Alternatives) == 0 {
			return nil, fmt.Errorf("%w: choice %q has no alternatives", ErrInvalidDeclaration, name)
		}
		alternatives := make([]wire.Alternative, len(decl.Alternatives))
		seen := make(map[string]struct{}, len(decl.Alternatives))
		for i, a := range decl.Alternatives {
			if a.Name == "" {
				return nil, fmt.Errorf("%w: choice %q alternative %d has no name", ErrInvalidDeclaration, name, i)
			}
			if _, dup := seen[a.Name]; dup {
				return nil, fmt.Errorf("%w: choice %q alternative %q", ErrDuplicateName, name, a.Name)
			}
			seen[a.Name] = struct{}{}
			if a.Tag != i {
				return nil, fmt.Errorf("%w: choice %q alternative %q has tag %d, want %d (alternatives must be declared in tag order)",
					ErrInvalidDeclaration, name, a.Name, a.Tag, i)
			}
			if _, ok := known[a.Type]; !ok {
				return nil, fmt.Errorf("%w: choice %q alternative %q references %q", ErrUnknownType, name, a.Name, a.Type)
			}
			alternatives[i] = wire.Alternative{Name: a.Name, Codec: typeRef{schema: schema, name: a.Type}}
		}
		choiceType := wire.ChoiceType{Alternatives: alternatives}
		schema.choices[name] = choiceType
		schema.entries[name] = wire.Erase[wire.ChoiceValue](choiceType)
	}

	return schema, nil
}

// validateNames rejects a declared name colliding with a built-in
// primitive, or a name declared as both a structure and a choice.
func validateNames(doc *Document) error {
	primitives := primitiveCodecs()
	for name := range doc.Structures {
		if _, ok := primitives[name]; ok {
			return fmt.Errorf("%w: structure %q shadows a primitive type", ErrDuplicateName, name)
		}
		if _, ok := doc.Choices[name]; ok {
			return fmt.Errorf("%w: %q declared as both a structure and a choice", ErrDuplicateName, name)
		}
	}
	for name := range doc.Choices {
		if _, ok := primitives[name]; ok {
			return fmt.Errorf("%w: choice %q shadows a primitive type", ErrDuplicateName, name)
		}
	}
	return nil
}

// Load loads a schema document from the TYBIN_SCHEMA environment
// variable. There is no fallback: an unset variable is an error.
func Load() (*Schema, error) {
	path := os.Getenv("TYBIN_SCHEMA")
	if path == "" {
		return nil, fmt.Errorf("TYBIN_SCHEMA environment variable not set; " +
			"set it to the path of your schema YAML file, or use --schema")
	}
	return LoadFile(path)
}

// LoadFile parses and compiles the schema document at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	schema, err := Compile(&doc)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}
	return schema, nil
}
