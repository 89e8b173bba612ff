package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

const stdStream = "-"

// stdio stands in for the process streams when a path is "-"
type stdio struct {
	in  io.Reader
	out io.Writer
}

func openReadFile(file string, std stdio) (io.ReadCloser, error) {
	if file == stdStream {
		if std.in == nil {
			return io.NopCloser(os.Stdin), nil
		}
		return io.NopCloser(std.in), nil
	}

	return os.Open(file)
}

// writeOutput replaces file with data, never leaving it partially written.
func writeOutput(ctx context.Context, file string, data []byte, std stdio) error {
	if file == stdStream {
		out := std.out
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("write standard output error: %w", err)
		}
		return nil
	}

	return writeFileAtomic(ctx, file, data)
}
