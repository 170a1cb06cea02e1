package provider

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	apperrors "transcribe-relay/internal/app/errors"
)

// Creator builds a provider from configuration.
type Creator func(cfg Config) (Transcriber, error)

var (
	providerRegistry = make(map[string]Creator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function. Provider packages
// call it from init.
func RegisterProvider(name string, creator Creator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[name] = creator
}

// GetProviderCreator returns the creator function for a provider name
func GetProviderCreator(name string) (Creator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[name]
	if !ok {
		names := lo.Keys(providerRegistry)
		sort.Strings(names)
		return nil, apperrors.Wrapf(apperrors.ErrProviderNotFound,
			"provider %q not registered (available: %s)", name, strings.Join(names, ", "))
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider names, sorted.
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := lo.Keys(providerRegistry)
	sort.Strings(names)
	return names
}

// New creates the named provider.
func New(name string, cfg Config) (Transcriber, error) {
	creator, err := GetProviderCreator(name)
	if err != nil {
		return nil, err
	}
	return creator(cfg)
}
