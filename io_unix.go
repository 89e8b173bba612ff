//go:build !windows

package main

import (
	"context"
	"fmt"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"
)

// writeFileAtomic writes data to a temporary file next to path, fsyncs it
// and renames it over path.
func writeFileAtomic(ctx context.Context, path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create output file error, file:%s, error: %w", path, err)
	}
	defer func() {
		// no-op once the file has been committed
		if err := pendingFile.Cleanup(); err != nil {
			LoggerOf(ctx).Debug("cleanup pending output file", zap.Error(err))
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write output file error, file:%s, error: %w", path, err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace output file error, file:%s, error: %w", path, err)
	}

	return nil
}
