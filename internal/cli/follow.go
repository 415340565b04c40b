package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/ksyq12/nginxtools/internal/logger"
)

// followFile copies data written to path after offset into w until ctx
// is done. A truncated file is read again from the start; a file recreated
// by log rotation is reopened. ready, if set, is called once the watch is
// active.
func followFile(ctx context.Context, path string, offset int64, w io.Writer, ready func()) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch the directory so rotation (rename + create) is seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch directory %s: %w", filepath.Dir(path), err)
	}

	// Catch up on anything written past offset before the watch started.
	if err := rewindIfTruncated(f); err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	if ready != nil {
		ready()
	}

	target := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				nf, err := os.Open(path)
				if err != nil {
					logger.Debug("Reopen %s: %v", path, err)
					continue
				}
				_ = f.Close()
				f = nf
				logger.Info("Reopened %s", path)
				if _, err := io.Copy(w, f); err != nil {
					return err
				}
			case event.Has(fsnotify.Write):
				if err := rewindIfTruncated(f); err != nil {
					return err
				}
				if _, err := io.Copy(w, f); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("fsnotify watcher error: %v", err)
		}
	}
}

func rewindIfTruncated(f *os.File) error {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < pos {
		_, err = f.Seek(0, io.SeekStart)
	}
	return err
}
