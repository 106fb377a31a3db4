// Package report renders inspection reports.
package report

import (
	"io"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/zerr"
)

// Write renders report to w in format. FormatAuto must be resolved by the caller.
func Write(w io.Writer, format domain.Format, report *domain.Report) error {
	var err error
	switch format {
	case domain.FormatJSON:
		err = writeJSON(w, report)
	case domain.FormatYAML:
		err = writeYAML(w, report)
	case domain.FormatTable:
		err = writeTable(w, report)
	default:
		return zerr.With(domain.ErrUnknownFormat, "format", string(format))
	}
	if err != nil {
		return zerr.Wrap(err, domain.ErrReportWriteFailed.Error())
	}
	return nil
}
