//go:build windows

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path. renameio does not support windows.
func writeFileAtomic(_ context.Context, path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"*")
	if err != nil {
		return fmt.Errorf("create output file error, file:%s, error: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write output file error, file:%s, error: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync output file error, file:%s, error: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file error, file:%s, error: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace output file error, file:%s, error: %w", path, err)
	}
	return nil
}
