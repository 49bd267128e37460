// Package export hands collected criteria to downstream consumers.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/tbxark/styleadvisor/criteria"
)

// Exporter renders criteria in one output format.
type Exporter interface {
	Export(c *criteria.Criteria, w io.Writer) error
	Extension() string
}

// Consumer receives the criteria of every completed session.
type Consumer interface {
	Accept(ctx context.Context, c *criteria.Criteria) error
}

// NewExporter creates an exporter for format.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json", "":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, md)", format)
	}
}
