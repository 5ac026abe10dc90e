// Package photo stores scanned identity document photos on disk.
package photo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxSize caps uploaded photo size at 5 MiB.
const MaxSize = 5 << 20

// Store saves and removes identity document photos. Save returns the
// relative path recorded on the person record.
type Store interface {
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	Remove(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Disk keeps photos under a base directory with uuid filenames, preserving
// the original extension so content type can be inferred on serve.
type Disk struct {
	baseDir string
}

// NewDisk creates the base directory if needed.
func NewDisk(baseDir string) (*Disk, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &Disk{baseDir: baseDir}, nil
}

func (d *Disk) Save(_ context.Context, r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported photo type %q", ext)
	}

	name := uuid.NewString() + ext
	full := filepath.Join(d.baseDir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	if _, err := io.Copy(f, io.LimitReader(r, MaxSize)); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("close photo file: %w", err)
	}
	return name, nil
}

func (d *Disk) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	full, err := d.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo file: %w", err)
	}
	return nil
}

func (d *Disk) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open photo file: %w", err)
	}
	return f, nil
}

// resolve rejects paths that would escape the base directory.
func (d *Disk) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if clean != filepath.Base(clean) {
		return "", fmt.Errorf("invalid photo path %q", path)
	}
	return filepath.Join(d.baseDir, clean), nil
}
