package export

import (
	"io"

	"github.com/tbxark/styleadvisor/criteria"
	"gopkg.in/yaml.v3"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Export(c *criteria.Criteria, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(c)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
