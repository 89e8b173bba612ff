package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// chip8Origin is where CHIP-8 interpreters load a program
const chip8Origin = 0x200

type dumpOptions struct {
	Width   int
	Origin  uint
	Address bool
}

// EncodeListing writes data as an opcode listing, opts.Width bytes per line.
// Decoding the listing yields data again.
func EncodeListing(w io.Writer, data []byte, opts dumpOptions) error {
	if opts.Width < 1 {
		return usageErrorf("width must be at least 1, got %d", opts.Width)
	}

	// a line never holds more than the whole input
	width := opts.Width
	if width > len(data) {
		width = len(data)
	}

	bw := bufio.NewWriter(w)
	pairs := make([]string, 0, width)
	for off := 0; off < len(data); off += width {
		end := off + width
		if end > len(data) {
			end = len(data)
		}

		digits := strings.ToUpper(hex.EncodeToString(data[off:end]))
		pairs = pairs[:0]
		for i := 0; i < len(digits); i += 2 {
			pairs = append(pairs, digits[i:i+2])
		}

		line := strings.Join(pairs, " ")
		if opts.Address {
			// pad so that address comments line up
			line = fmt.Sprintf("%-*s // 0x%03X", width*3-1, line, opts.Origin+uint(off))
		}

		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("write listing error: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write listing error: %w", err)
	}
	return nil
}

func Dump(ctx context.Context, src, dst string, opts dumpOptions, std stdio) (int, error) {
	ctx = CtxAddKvs(ctx, "source", src, "destination", dst)

	in, err := openReadFile(src, std)
	if err != nil {
		return 0, fmt.Errorf("open input file error, file:%s, error: %w", src, err)
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return 0, fmt.Errorf("read input file error, file:%s, error: %w", src, err)
	}

	var sb strings.Builder
	if err := EncodeListing(&sb, data, opts); err != nil {
		return 0, err
	}

	if err := writeOutput(ctx, dst, []byte(sb.String()), std); err != nil {
		return 0, err
	}

	LoggerOf(ctx).Info("dumped", zap.Int("bytes", len(data)))
	return len(data), nil
}
