package staging

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"transcribe-relay/internal/app/storage/object"
	"transcribe-relay/internal/app/util/files"
)

// Backend names accepted in configuration.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// Stager makes an upload available to a transcription provider.
type Stager interface {
	Stage(ctx context.Context, r io.Reader, filename string) (*Staged, error)
}

// Staged is an upload ready for transcription. Source is what the provider
// receives: the local Path, or a URL pointing at a copy of it.
type Staged struct {
	Path     string
	Source   string
	Size     int64
	MIMEType string

	logger   *zap.Logger
	cleanups []func(ctx context.Context) error
}

// Cleanup removes everything created for this upload, most recent first.
// Failures are logged and otherwise ignored.
func (s *Staged) Cleanup(ctx context.Context) {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		if err := s.cleanups[i](ctx); err != nil {
			s.logger.Warn("Failed to clean up staged upload", zap.String("path", s.Path), zap.Error(err))
		}
	}
	s.cleanups = nil
}

// LocalStager writes uploads into a temporary directory.
type LocalStager struct {
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalStager creates a stager writing to dir. maxBytes <= 0 means no limit.
func NewLocalStager(dir string, maxBytes int64, logger *zap.Logger) *LocalStager {
	return &LocalStager{dir: dir, maxBytes: maxBytes, logger: logger}
}

// Stage implements Stager.
func (l *LocalStager) Stage(ctx context.Context, r io.Reader, filename string) (*Staged, error) {
	saved, err := files.SaveUpload(l.dir, filename, r, l.maxBytes)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Saved upload", zap.String("path", saved.Path), zap.Int64("size", saved.Size), zap.String("mime", saved.MIMEType))

	return &Staged{
		Path:     saved.Path,
		Source:   saved.Path,
		Size:     saved.Size,
		MIMEType: saved.MIMEType,
		logger:   l.logger,
		cleanups: []func(context.Context) error{
			func(context.Context) error {
				if err := files.Remove(saved.Path); err != nil {
					return err
				}
				l.logger.Debug("Removed temporary file", zap.String("path", saved.Path))
				return nil
			},
		},
	}, nil
}

// ObjectStager stages locally and then publishes the file to object storage,
// handing the provider a presigned URL.
type ObjectStager struct {
	local  *LocalStager
	store  object.Store
	expiry time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewObjectStager creates an object storage backed stager.
func NewObjectStager(local *LocalStager, store object.Store, expiry time.Duration, logger *zap.Logger) *ObjectStager {
	return &ObjectStager{
		local:  local,
		store:  store,
		expiry: expiry,
		now:    time.Now,
		logger: logger,
	}
}

// Stage implements Stager.
func (o *ObjectStager) Stage(ctx context.Context, r io.Reader, filename string) (*Staged, error) {
	staged, err := o.local.Stage(ctx, r, filename)
	if err != nil {
		return nil, err
	}

	key := object.NewKey(staged.Path, o.now())
	if err := o.store.PutFile(ctx, key, staged.Path, staged.MIMEType); err != nil {
		staged.Cleanup(ctx)
		return nil, err
	}
	staged.cleanups = append(staged.cleanups, func(ctx context.Context) error {
		return o.store.Delete(ctx, key)
	})

	url, err := o.store.PresignGet(ctx, key, o.expiry)
	if err != nil {
		staged.Cleanup(ctx)
		return nil, err
	}
	staged.Source = url

	o.logger.Debug("Published upload to object storage", zap.String("key", key))
	return staged, nil
}
