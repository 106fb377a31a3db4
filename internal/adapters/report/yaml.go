package report

import (
	"io"

	"go.trai.ch/mvninspect/internal/core/domain"
	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, report *domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
