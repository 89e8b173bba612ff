package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Convert decodes the opcode listing at src and writes the raw bytes to dst.
// Either path may be "-" for the standard streams. dst is written only
// after the whole listing decoded successfully.
func Convert(ctx context.Context, src, dst string, std stdio) (int, error) {
	ctx = CtxAddKvs(ctx, "source", src, "destination", dst)

	data, err := readListing(ctx, src, std)
	if err != nil {
		return 0, err
	}

	if err := writeOutput(ctx, dst, data, std); err != nil {
		return 0, err
	}

	LoggerOf(ctx).Info("converted", zap.Int("bytes", len(data)))
	return len(data), nil
}

func Check(ctx context.Context, src string, std stdio) (int, error) {
	ctx = CtxAddKvs(ctx, "source", src)

	data, err := readListing(ctx, src, std)
	if err != nil {
		return 0, err
	}

	LoggerOf(ctx).Info("checked", zap.Int("bytes", len(data)))
	return len(data), nil
}

func readListing(ctx context.Context, src string, std stdio) ([]byte, error) {
	in, err := openReadFile(src, std)
	if err != nil {
		return nil, fmt.Errorf("open input file error, file:%s, error: %w", src, err)
	}
	defer in.Close()

	return DecodeListing(ctx, in)
}

// stripExt removes the extension of the last path element. Leading dots of
// the name do not start an extension.
func stripExt(path string) string {
	name := strings.TrimLeft(filepath.Base(path), ".")
	ext := filepath.Ext(name)
	return path[:len(path)-len(ext)]
}

func resolveDestination(src, dst string) (string, error) {
	if dst != "" {
		return dst, nil
	}

	if src == stdStream {
		return "", usageErrorf("destination is required when reading standard input")
	}

	derived := stripExt(src)
	if derived == src {
		return "", usageErrorf("source %q has no extension to strip, destination is required", src)
	}

	return derived, nil
}
