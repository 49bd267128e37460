package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tbxark/styleadvisor/criteria"
)

// File is a Consumer that writes each record to a file. Nothing is created
// until a record arrives.
type File struct {
	exporter Exporter
	path     string
	dir      string
	now      func() time.Time
	written  []string
}

// NewFile writes records to path, replacing it on every Accept.
func NewFile(exporter Exporter, path string) *File {
	return &File{exporter: exporter, path: path, now: time.Now}
}

// NewFileInDir writes each record to dir/criteria-<timestamp>.<ext>.
func NewFileInDir(exporter Exporter, dir string) *File {
	return &File{exporter: exporter, dir: dir, now: time.Now}
}

func (f *File) Accept(ctx context.Context, rec *criteria.Criteria) error {
	if rec == nil {
		return errors.New("nil criteria")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path := f.path
	if path == "" {
		path = filepath.Join(f.dir, fmt.Sprintf("criteria-%s.%s", f.now().Format("20060102-150405.000"), f.exporter.Extension()))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := f.exporter.Export(rec, out); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	f.written = append(f.written, path)
	return nil
}

// Written lists the files created so far.
func (f *File) Written() []string {
	return append([]string{}, f.written...)
}

var _ Consumer = (*File)(nil)
