package ports

import "go.trai.ch/pak/internal/core/domain"

// SettingsLoader loads the defaults applied to commands.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsLoader interface {
	// Load returns the settings, or domain.DefaultSettings if no settings file exists.
	Load() (domain.Settings, error)
}
