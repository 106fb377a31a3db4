// Package detector picks the report format from the environment.
package detector

import (
	"os"

	"go.trai.ch/mvninspect/internal/core/domain"
	"golang.org/x/term"
)

// DetectEnvironment returns the format auto mode stands for. It checks if
// stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() domain.Format {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return domain.FormatJSON
	}
	return domain.FormatTable
}

// ResolveFormat applies the user's --format flag to the auto detected format.
func ResolveFormat(autoDetected domain.Format, userFlag string) (domain.Format, error) {
	format, err := domain.ParseFormat(userFlag)
	if err != nil {
		return "", err
	}
	if format == domain.FormatAuto {
		return autoDetected, nil
	}
	return format, nil
}
