package domain

import "go.trai.ch/zerr"

// Format selects how a Report is rendered.
type Format string

const (
	// FormatAuto picks FormatTable on an interactive terminal and FormatJSON otherwise.
	FormatAuto Format = "auto"
	// FormatJSON writes one JSON object per module per line.
	FormatJSON Format = "json"
	// FormatYAML writes the whole report as one YAML document.
	FormatYAML Format = "yaml"
	// FormatTable writes a human readable summary.
	FormatTable Format = "table"
)

// ParseFormat validates a --format value. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAuto, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatAuto, nil
	default:
		return "", zerr.With(ErrUnknownFormat, "format", s)
	}
}
