package interfaces

import "github.com/ansys/pypim/domain"

// ConfigResolver locates and parses the PIM client configuration.
//
// Implemented by adapters.EnvConfigResolver (production, reads the file named by
// ANSYS_PLATFORM_INSTANCEMANAGEMENT_CONFIG) and adapters.StaticConfigResolver (tests, embedded hosts).
// Called from service.Connect.
//
//go:generate moq -stub -out mock/config_resolver.go -pkg mock . ConfigResolver
type ConfigResolver interface {
	// IsConfigured reports whether a valid configuration can be resolved. Never returns an error;
	// any failure (missing variable, missing file, malformed content) yields false.
	IsConfigured() bool
	// Resolve returns the configuration, or a domain.PIMError with code ErrNotConfigured
	// or ErrInvalidConfiguration.
	Resolve() (domain.Configuration, error)
}
