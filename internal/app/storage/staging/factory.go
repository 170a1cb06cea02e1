package staging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"transcribe-relay/internal/app/api/provider"
	"transcribe-relay/internal/app/storage/object"
	"transcribe-relay/internal/config"
)

// New selects the stager for cfg. The minio backend only applies when the
// provider can fetch URLs; otherwise local staging is used.
func New(ctx context.Context, cfg *config.Config, transcriber provider.Transcriber, logger *zap.Logger) (Stager, error) {
	local := NewLocalStager(cfg.Upload.TempDir, cfg.MaxUploadBytes(), logger)

	switch cfg.Staging.Backend {
	case "", BackendLocal:
		return local, nil
	case BackendMinIO:
		if !transcriber.SupportsURL() {
			logger.Warn("Provider cannot fetch URLs, falling back to local staging",
				zap.String("provider", transcriber.Name()))
			return local, nil
		}
		store, err := object.NewMinioStore(ctx, cfg.Staging.MinIO)
		if err != nil {
			return nil, err
		}
		return NewObjectStager(local, store, cfg.Staging.MinIO.URLExpiry, logger), nil
	default:
		return nil, fmt.Errorf("unknown staging backend %q", cfg.Staging.Backend)
	}
}
