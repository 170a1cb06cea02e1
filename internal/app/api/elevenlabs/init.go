package elevenlabs

import (
	"transcribe-relay/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(ProviderName, func(cfg provider.Config) (provider.Transcriber, error) {
		return NewSTTProvider(cfg), nil
	})
}
