package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// replaceFile swaps in new content with a rename, the way editors save
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".swp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, path))
}

func Test_Watch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	src := filepath.Join(dir, "rom.txt")
	dst := filepath.Join(dir, "rom")
	require.NoError(t, os.WriteFile(src, []byte("00E0\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, src, dst, 10*time.Millisecond, stdio{})
	}()

	fileIs := func(want []byte) func() bool {
		return func() bool {
			b, err := os.ReadFile(dst)
			return err == nil && bytes.Equal(b, want)
		}
	}

	// the watcher is registered before the first build
	assert.Eventually(t, fileIs([]byte{0x00, 0xE0}), 5*time.Second, 10*time.Millisecond)

	// a broken listing is reported but keeps the last good output
	replaceFile(t, src, "00E\n")
	time.Sleep(100 * time.Millisecond)
	assert.True(t, fileIs([]byte{0x00, 0xE0})())

	replaceFile(t, src, "12 00 ; loop\n")
	assert.Eventually(t, fileIs([]byte{0x12, 0x00}), 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func Test_Watch_missingDirectory(t *testing.T) {
	src := filepath.Join(t.TempDir(), "missing", "rom.txt")
	err := Watch(context.Background(), src, src+".bin", time.Millisecond, stdio{})
	assert.Error(t, err)
}
