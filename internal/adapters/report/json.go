package report

import (
	"io"

	"github.com/goccy/go-json"
	"go.trai.ch/mvninspect/internal/core/domain"
)

// writeJSON writes one JSON object per module per line. Diagnostics are not
// part of the stream; they reach the user as warnings.
func writeJSON(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range report.Modules {
		if err := enc.Encode(&report.Modules[i]); err != nil {
			return err
		}
	}
	return nil
}
