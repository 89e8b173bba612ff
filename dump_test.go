package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncodeListing(t *testing.T) {
	data := []byte{0x00, 0xE0, 0xA2, 0x2a, 0xff}

	var sb strings.Builder
	err := EncodeListing(&sb, data, dumpOptions{Width: 2, Origin: chip8Origin, Address: true})
	require.NoError(t, err)

	want := "" +
		"00 E0 // 0x200\n" +
		"A2 2A // 0x202\n" +
		"FF    // 0x204\n"
	assert.Equal(t, want, sb.String())
}

func Test_EncodeListing_noAddress(t *testing.T) {
	var sb strings.Builder
	err := EncodeListing(&sb, []byte{1, 2, 3, 4, 5}, dumpOptions{Width: 4})
	require.NoError(t, err)
	assert.Equal(t, "01 02 03 04\n05\n", sb.String())
}

func Test_EncodeListing_empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, EncodeListing(&sb, nil, dumpOptions{Width: 2, Address: true}))
	assert.Empty(t, sb.String())
}

func Test_EncodeListing_badWidth(t *testing.T) {
	err := EncodeListing(&strings.Builder{}, []byte{1}, dumpOptions{Width: 0})
	assert.True(t, errors.Is(err, ErrUsage))
}

func Test_EncodeListing_roundTrip(t *testing.T) {
	data := make([]byte, 0, 256)
	for i := 0; i < 256; i++ {
		data = append(data, byte(i*7))
	}

	for _, width := range []int{1, 2, 3, 16, 300} {
		for _, addr := range []bool{true, false} {
			var sb strings.Builder
			require.NoError(t, EncodeListing(&sb, data, dumpOptions{Width: width, Origin: chip8Origin, Address: addr}))

			back, err := DecodeListing(context.Background(), strings.NewReader(sb.String()))
			require.NoError(t, err)
			assert.Equal(t, data, back, "width %d address %v", width, addr)
		}
	}
}

func Test_Dump(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rom")
	require.NoError(t, os.WriteFile(src, []byte{0x12, 0x00}, 0644))

	var out bytes.Buffer
	n, err := Dump(context.Background(), src, stdStream, dumpOptions{Width: 2, Origin: chip8Origin, Address: true}, stdio{out: &out})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "12 00 // 0x200\n", out.String())

	dst := filepath.Join(dir, "rom.txt")
	_, err = Dump(context.Background(), src, dst, dumpOptions{Width: 2}, stdio{})
	require.NoError(t, err)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "12 00\n", string(b))
}

func Test_EncodeListing_hugeWidth(t *testing.T) {
	var sb strings.Builder
	require.NotPanics(t, func() {
		err := EncodeListing(&sb, []byte{1, 2}, dumpOptions{Width: 1 << 60, Origin: chip8Origin, Address: true})
		require.NoError(t, err)
	})
	assert.Equal(t, "01 02 // 0x200\n", sb.String())
}
