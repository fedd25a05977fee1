// tybin-bench encodes representative wire-format values at varying
// sizes and reports throughput, plus how much further the result
// compresses under zstd and LZ4 — a rough measure of the entropy the
// deterministic binary encoding leaves on the table.
package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/pflag"

	"github.com/latticeware/tybin/lib/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var recordCount int
	var verbose bool

	flagSet := pflag.NewFlagSet("tybin-bench", pflag.ContinueOnError)
	flagSet.IntVar(&recordCount, "records", 100_000, "number of records per benchmarked shape")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log each shape's raw byte count before compression")
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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	zstdEncoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("initializing zstd encoder: %w", err)
	}
	defer zstdEncoder.Close()

	shapes := []struct {
		name    string
		encoded func() []byte
	}{
		{"typed-sequence[uint32]", func() []byte { return encodeTypedSequence(recordCount) }},
		{"dictionary[uint32,uint32]", func() []byte { return encodeDictionary(recordCount) }},
		{"structure-records", func() []byte { return encodeStructureRecords(recordCount) }},
	}

	fmt.Printf("%-28s %12s %14s %10s %10s\n", "shape", "bytes", "encode MB/s", "zstd", "lz4")
	for _, shape := range shapes {
		start := time.Now()
		encoded := shape.encoded()
		elapsed := time.Since(start)

		logger.Info("encoded shape", "shape", shape.name, "bytes", len(encoded), "records", recordCount)

		throughputMBps := float64(len(encoded)) / elapsed.Seconds() / (1 << 20)

		compressedZstd := zstdEncoder.EncodeAll(encoded, nil)

		compressedLZ4 := make([]byte, lz4.CompressBlockBound(len(encoded)))
		written, err := lz4.CompressBlock(encoded, compressedLZ4, nil)
		if err != nil {
			return fmt.Errorf("lz4 compressing %s: %w", shape.name, err)
		}
		lz4Size := written
		if written == 0 {
			lz4Size = len(encoded) // CompressBlock returns 0 for incompressible input
		}

		fmt.Printf("%-28s %12d %14.1f %9.2fx %9.2fx\n",
			shape.name, len(encoded), throughputMBps,
			ratio(len(encoded), len(compressedZstd)),
			ratio(len(encoded), lz4Size),
		)
	}
	return nil
}

func ratio(original, compressed int) float64 {
	if compressed == 0 {
		return 0
	}
	return float64(original) / float64(compressed)
}

func encodeTypedSequence(n int) []byte {
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(i) * 2654435761 % (1 << 32)
	}
	seq, err := wire.NewSequence(4, wire.Unbounded(), values)
	if err != nil {
		panic(err)
	}
	codec := wire.SequenceCodec{ElementWidth: 4, Policy: wire.Unbounded()}
	encoded, err := codec.Encode(seq)
	if err != nil {
		panic(err)
	}
	return encoded
}

func encodeDictionary(n int) []byte {
	codec := wire.DictionaryCodec[uint32, uint32]{
		KeyCodec:   wire.Uint32{},
		ValueCodec: wire.Uint32{},
		Compare:    cmp.Compare[uint32],
	}
	m := make(map[uint32]uint32, n)
	for i := 0; i < n; i++ {
		m[uint32(i)] = uint32(i) * 31
	}
	encoded, err := codec.Encode(m)
	if err != nil {
		panic(err)
	}
	return encoded
}

func recordStructType() wire.StructType {
	return wire.StructType{Fields: []wire.Field{
		{Name: "id", Codec: wire.Erase[uint32](wire.Uint32{})},
		{Name: "score", Codec: wire.Erase[int16](wire.Int16{})},
		{Name: "label", Codec: wire.Erase[string](wire.String{})},
	}}
}

func encodeStructureRecords(n int) []byte {
	structType := recordStructType()
	seq := wire.DictionaryCodec[uint32, wire.StructValue]{
		KeyCodec:   wire.Uint32{},
		ValueCodec: structType,
		Compare:    cmp.Compare[uint32],
	}
	m := make(map[uint32]wire.StructValue, n)
	for i := 0; i < n; i++ {
		m[uint32(i)] = wire.StructValue{Values: []any{
			uint32(i), int16(i%2000 - 1000), fmt.Sprintf("record-%d", i),
		}}
	}
	encoded, err := seq.Encode(m)
	if err != nil {
		panic(err)
	}
	return encoded
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `tybin-bench — throughput and compressibility benchmark for tybin's wire codecs.

Encodes a typed sequence, a dictionary, and a set of structure records at
the requested size, reporting encode throughput and the ratio each shape
compresses further under zstd and LZ4.

Usage:
  tybin-bench [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
