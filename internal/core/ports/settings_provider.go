package ports

import "github.com/AntonioJCosta/pgdock/internal/core/domain/settings"

// SettingsProvider defines the contract for loading pgdock's configuration.
type SettingsProvider interface {
	// Load returns the merged settings. It is called once at startup.
	Load() (settings.Settings, error)
}
