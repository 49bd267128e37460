package export

import (
	"context"
	"errors"
	"io"

	"github.com/tbxark/styleadvisor/criteria"
)

// Writer is a Consumer that exports each record to an io.Writer.
type Writer struct {
	exporter Exporter
	w        io.Writer
}

func NewWriter(exporter Exporter, w io.Writer) *Writer {
	return &Writer{exporter: exporter, w: w}
}

func (c *Writer) Accept(ctx context.Context, rec *criteria.Criteria) error {
	if rec == nil {
		return errors.New("nil criteria")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.exporter.Export(rec, c.w)
}

// Multi fans a record out to every consumer, stopping at the first error.
type Multi []Consumer

func (m Multi) Accept(ctx context.Context, rec *criteria.Criteria) error {
	for _, c := range m {
		if err := c.Accept(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Consumer = (*Writer)(nil)
	_ Consumer = Multi(nil)
)
