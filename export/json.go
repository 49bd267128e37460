package export

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/tbxark/styleadvisor/criteria"
)

type JSONExporter struct{}

func (e *JSONExporter) Export(c *criteria.Criteria, w io.Writer) error {
	data, err := sonic.ConfigStd.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func (e *JSONExporter) Extension() string {
	return "json"
}
