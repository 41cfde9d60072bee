package extractor

import (
	"fmt"

	"awaaz/internal/config"
	"awaaz/internal/port"
)

// ProviderFactory is a function that creates a SlotExtractor from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.SlotExtractor, error)

// registry of extractor provider factories, populated explicitly via
// RegisterProvider during wiring.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a SlotExtractor from a provider config using the
// registered factory.
func NewExtractor(cfg *config.ProviderConfig) (port.SlotExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
