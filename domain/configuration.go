package domain

// SupportedConfigurationVersion is the only configuration schema version this client understands.
const SupportedConfigurationVersion = 1

// Configuration holds the settings needed to reach the PIM service. It is built once per
// resolution and never mutated afterwards.
type Configuration struct {
	Version int
	URI     string
	// Headers are attached to every call made to the PIM service.
	Headers map[string]string
	// TLS selects a secure channel; AccessToken is then sent as a bearer token.
	TLS         bool
	AccessToken string
}

// HeadersCopy returns a copy of Headers so callers cannot mutate the configuration.
func (c Configuration) HeadersCopy() map[string]string {
	out := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		out[k] = v
	}
	return out
}
