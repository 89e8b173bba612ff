package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

var commentMarkers = []string{"//", ";"}

// cleanLine returns the significant content of a listing line: everything
// before the first comment marker, with space characters removed and
// surrounding whitespace trimmed.
func cleanLine(line string) string {
	cut := len(line)
	for _, marker := range commentMarkers {
		if i := strings.Index(line, marker); i >= 0 && i < cut {
			cut = i
		}
	}

	s := strings.ReplaceAll(line[:cut], " ", "")
	return strings.TrimSpace(s)
}

func decodeLine(line string, lineNo int) ([]byte, error) {
	token := cleanLine(line)
	if token == "" {
		return nil, nil
	}

	if len(token)%2 != 0 {
		return nil, &OpcodeError{Line: lineNo, Text: token, Err: ErrOddLength}
	}

	out := make([]byte, len(token)/2)
	if _, err := hex.Decode(out, []byte(token)); err != nil {
		opErr := &OpcodeError{Line: lineNo, Text: token, Err: ErrInvalidDigit}
		var invalid hex.InvalidByteError
		if errors.As(err, &invalid) {
			opErr.Column = strings.IndexByte(token, byte(invalid)) + 1
		}
		return nil, opErr
	}

	return out, nil
}

// readLine returns the next line without its terminator. "\n", "\r\n" and a
// lone "\r" all end a line. The bool is false once the input is exhausted.
func readLine(r *bufio.Reader) (string, bool, error) {
	var sb strings.Builder
	for {
		c, err := r.ReadByte()
		if err == io.EOF {
			return sb.String(), sb.Len() > 0, nil
		}
		if err != nil {
			return "", false, err
		}

		switch c {
		case '\n':
			return sb.String(), true, nil
		case '\r':
			next, err := r.ReadByte()
			if err == nil && next != '\n' {
				_ = r.UnreadByte()
			}
			return sb.String(), true, nil
		default:
			sb.WriteByte(c)
		}
	}
}

// DecodeListing reads an opcode listing to the end and returns the bytes it
// encodes. It stops at the first malformed line.
func DecodeListing(ctx context.Context, r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	var result []byte
	lineNo := 0
	for {
		line, ok, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("read listing error (line=%d): %w", lineNo+1, err)
		}
		if !ok {
			break
		}
		lineNo++

		b, err := decodeLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		if len(b) > 0 {
			LoggerOf(ctx).Debug("decode line", zap.Int("line", lineNo), zap.Int("bytes", len(b)))
		}
		result = append(result, b...)
	}

	return result, nil
}
