package export

import (
	"fmt"
	"io"

	"github.com/tbxark/styleadvisor/criteria"
)

// MarkdownExporter writes a titled criteria table.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(c *criteria.Criteria, w io.Writer) error {
	_, err := fmt.Fprintf(w, "# Shopping criteria\n\n%s", criteria.FormatTable(*c))
	return err
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
