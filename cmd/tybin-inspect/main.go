// tybin-inspect decodes a wire-format file against a YAML-declared type
// and prints its JSON form, or does the reverse: it reads a JSON (or
// CBOR) document and emits the wire-format encoding.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/latticeware/tybin/lib/wire"
	"github.com/latticeware/tybin/lib/wirehash"
	"github.com/latticeware/tybin/lib/wireschema"
	"github.com/latticeware/tybin/lib/wiretranscode"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var schemaPath string
	var typeName string
	var inputPath string
	var outputPath string
	var encodeMode bool
	var format string
	var printDigest bool

	flagSet := pflag.NewFlagSet("tybin-inspect", pflag.ContinueOnError)
	flagSet.StringVar(&schemaPath, "schema", "", "path to the YAML schema document (overrides TYBIN_SCHEMA)")
	flagSet.StringVar(&typeName, "type", "", "name of the structure or choice type declared in the schema")
	flagSet.StringVar(&inputPath, "in", "-", "input file (- for stdin)")
	flagSet.StringVar(&outputPath, "out", "-", "output file (- for stdout)")
	flagSet.BoolVar(&encodeMode, "encode", false, "encode JSON/CBOR to wire bytes instead of decoding")
	flagSet.StringVar(&format, "format", "json", "JSON form's transport when encoding, or when printing a decode result: json or cbor")
	flagSet.BoolVar(&printDigest, "digest", false, "when decoding, print the input payload's wirehash digest to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	decode := !encodeMode

	if schemaPath == "" {
		schemaPath = os.Getenv("TYBIN_SCHEMA")
	}
	if schemaPath == "" {
		return fmt.Errorf("no schema given: pass --schema or set TYBIN_SCHEMA")
	}
	if typeName == "" {
		return fmt.Errorf("--type is required")
	}

	schema, err := wireschema.LoadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	codec, ok := schema.Lookup(typeName)
	if !ok {
		return fmt.Errorf("schema %s declares no type %q", schemaPath, typeName)
	}

	input, err := readAll(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	var output []byte
	if decode {
		output, err = decodeToJSONForm(codec, input, format)
	} else {
		output, err = encodeFromJSONForm(codec, input, format)
	}
	if err != nil {
		return err
	}

	if printDigest && decode {
		fmt.Fprintf(os.Stderr, "payload digest: %s\n", wirehash.Payload(input))
	}

	return writeAll(outputPath, output)
}

// decodeToJSONForm parses wire-format bytes as codec and renders the
// result in the requested transport.
func decodeToJSONForm(codec wire.AnyCodec, wireBytes []byte, format string) ([]byte, error) {
	value, err := codec.DecodeAny(wireBytes)
	if err != nil {
		return nil, fmt.Errorf("decoding wire bytes: %w", err)
	}
	jsonForm, err := codec.ToJSONAny(value)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON form: %w", err)
	}
	switch format {
	case "json":
		return json.MarshalIndent(jsonForm, "", "  ")
	case "cbor":
		return wiretranscode.MarshalJSONForm(jsonForm)
	default:
		return nil, fmt.Errorf("unknown --format %q: want json or cbor", format)
	}
}

// encodeFromJSONForm parses a JSON or CBOR document in codec's JSON
// form and returns its wire-format encoding.
func encodeFromJSONForm(codec wire.AnyCodec, input []byte, format string) ([]byte, error) {
	var jsonForm any
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(input, &jsonForm)
	case "cbor":
		jsonForm, err = wiretranscode.UnmarshalJSONForm(input)
	default:
		return nil, fmt.Errorf("unknown --format %q: want json or cbor", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s input: %w", format, err)
	}

	value, err := codec.FromJSONAny(jsonForm)
	if err != nil {
		return nil, fmt.Errorf("converting from JSON form: %w", err)
	}
	return codec.EncodeAny(value)
}

func readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeAll(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
			_, err = os.Stdout.Write([]byte{'\n'})
		}
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tybin-inspect — decode and encode wire-format values against a YAML schema.

Given a schema document declaring named structure and choice types
(see lib/wireschema), decodes a wire-format file to its JSON form, or
encodes a JSON/CBOR document back to wire-format bytes.

Usage:
  tybin-inspect --schema doc.yaml --type point --in record.bin

Examples:
  # Decode a wire-format file to pretty-printed JSON
  tybin-inspect --schema doc.yaml --type point --in record.bin

  # Encode a JSON document to wire-format bytes
  tybin-inspect --schema doc.yaml --type point --encode --in record.json --out record.bin

  # Decode and report the payload's content digest
  tybin-inspect --schema doc.yaml --type point --in record.bin --digest

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
