package ports

import "go.trai.ch/mvninspect/internal/core/domain"

// SettingsReader parses a Maven user settings file.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsReader interface {
	Read(path string) (*domain.Settings, error)
}
