package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	apierrors "transcribe-relay/internal/api/errors"
	"transcribe-relay/internal/api/v1/dto"
	"transcribe-relay/internal/app/api/provider"
	apperrors "transcribe-relay/internal/app/errors"
	"transcribe-relay/internal/app/metrics"
	"transcribe-relay/internal/app/storage/staging"
	"transcribe-relay/internal/app/util/files"
)

// transcriptionService implements TranscriptionService
type transcriptionService struct {
	transcriber provider.Transcriber
	stager      staging.Stager
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(transcriber provider.Transcriber, stager staging.Stager, m *metrics.Metrics, logger *zap.Logger) TranscriptionService {
	return &transcriptionService{
		transcriber: transcriber,
		stager:      stager,
		metrics:     m,
		logger:      logger.With(zap.String("provider", transcriber.Name())),
	}
}

// Transcribe implements TranscriptionService.
func (s *transcriptionService) Transcribe(ctx context.Context, file io.Reader, filename string) (*dto.TranscriptionResponse, error) {
	staged, err := s.stager.Stage(ctx, file, filename)
	if err != nil {
		var tooLarge *files.TooLargeError
		if errors.As(err, &tooLarge) {
			return nil, apierrors.NewPayloadTooLargeError(tooLarge.Limit)
		}
		if errors.Is(err, apperrors.ErrUploadTooLarge) {
			return nil, apierrors.WrapError(err, apierrors.KindPayloadTooLarge, "Uploaded file exceeds the configured size limit")
		}
		s.logger.Error("Failed to stage upload", zap.String("filename", filename), zap.Error(err))
		return nil, internalError(err)
	}
	// The provider may have been cancelled with ctx; cleanup must still run.
	defer staged.Cleanup(context.WithoutCancel(ctx))

	s.logger.Info("Received file",
		zap.String("filename", filename),
		zap.String("path", staged.Path),
		zap.Int64("size", staged.Size),
		zap.String("mime", staged.MIMEType),
	)
	s.metrics.ObserveUpload(staged.Size)

	start := time.Now()
	result, err := s.transcriber.Transcribe(ctx, staged.Source)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveTranscription(s.transcriber.Name(), metrics.OutcomeFailed, elapsed)
		s.logger.Error("Transcription request failed", zap.String("path", staged.Path), zap.Error(err))
		return nil, internalError(err)
	}

	switch result.Status {
	case provider.StatusCompleted:
		s.metrics.ObserveTranscription(s.transcriber.Name(), metrics.OutcomeSuccess, elapsed)
		s.logger.Info("Transcription completed",
			zap.String("transcript_id", result.ID),
			zap.Int("characters", len(result.Text)),
			zap.Duration("elapsed", elapsed),
		)
		return &dto.TranscriptionResponse{Transcript: result.Text}, nil

	case provider.StatusError:
		s.metrics.ObserveTranscription(s.transcriber.Name(), metrics.OutcomeRejected, elapsed)
		s.logger.Warn("Transcription rejected", zap.String("transcript_id", result.ID), zap.String("reason", result.Error))
		return nil, apierrors.NewBadRequestError(
			fmt.Sprintf("Transcription failed: %s. Check file format and content.", result.Error))

	default:
		s.metrics.ObserveTranscription(s.transcriber.Name(), metrics.OutcomeFailed, elapsed)
		err := fmt.Errorf("unexpected transcript status %q", result.Status)
		s.logger.Error("Transcription ended in unexpected state", zap.String("transcript_id", result.ID), zap.Error(err))
		return nil, internalError(err)
	}
}

func internalError(err error) *apierrors.APIError {
	return apierrors.WrapError(err, apierrors.KindInternal,
		fmt.Sprintf("Internal Server Error during processing: %v", err))
}
