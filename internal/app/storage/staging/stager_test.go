package staging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transcribe-relay/internal/app/testutil"
	"transcribe-relay/internal/config"
)

func TestLocalStagerStageAndCleanup(t *testing.T) {
	dir := t.TempDir()
	stager := NewLocalStager(dir, 0, zap.NewNop())

	staged, err := stager.Stage(context.Background(), strings.NewReader("audio"), "clip.mp3")
	require.NoError(t, err)

	assert.Equal(t, staged.Path, staged.Source)
	assert.EqualValues(t, 5, staged.Size)
	assert.Equal(t, dir, filepath.Dir(staged.Path))
	assert.FileExists(t, staged.Path)

	staged.Cleanup(context.Background())
	assert.NoFileExists(t, staged.Path)

	// a second cleanup is a no-op
	staged.Cleanup(context.Background())
}

func TestLocalStagerCleanupToleratesMissingFile(t *testing.T) {
	staged, err := NewLocalStager(t.TempDir(), 0, zap.NewNop()).Stage(context.Background(), strings.NewReader("x"), "a.wav")
	require.NoError(t, err)
	require.NoError(t, os.Remove(staged.Path))

	assert.NotPanics(t, func() { staged.Cleanup(context.Background()) })
}

func TestObjectStagerPublishesPresignedURL(t *testing.T) {
	store := testutil.NewMockObjectStore(t)
	local := NewLocalStager(t.TempDir(), 0, zap.NewNop())
	stager := NewObjectStager(local, store, 30*time.Minute, zap.NewNop())
	stager.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	var key string
	store.On("PutFile", mock.Anything, mock.MatchedBy(func(k string) bool {
		key = k
		return strings.HasPrefix(k, "uploads/2024/05/01/") && strings.HasSuffix(k, ".mp3")
	}), mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()
	store.On("PresignGet", mock.Anything, mock.AnythingOfType("string"), 30*time.Minute).
		Return("https://minio.local/relay-uploads/signed", nil).Once()

	staged, err := stager.Stage(context.Background(), strings.NewReader("audio"), "clip.mp3")
	require.NoError(t, err)

	assert.Equal(t, "https://minio.local/relay-uploads/signed", staged.Source)
	assert.FileExists(t, staged.Path)

	store.On("Delete", mock.Anything, key).Return(nil).Once()
	staged.Cleanup(context.Background())

	assert.NoFileExists(t, staged.Path)
	store.AssertExpectations(t)
}

func TestObjectStagerPutFailureRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store := testutil.NewMockObjectStore(t)
	stager := NewObjectStager(NewLocalStager(dir, 0, zap.NewNop()), store, time.Hour, zap.NewNop())

	store.On("PutFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	staged, err := stager.Stage(context.Background(), strings.NewReader("audio"), "clip.mp3")

	assert.Nil(t, staged)
	assert.EqualError(t, err, "connection refused")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
	store.AssertExpectations(t)
}

func TestObjectStagerPresignFailureDeletesObject(t *testing.T) {
	dir := t.TempDir()
	store := testutil.NewMockObjectStore(t)
	stager := NewObjectStager(NewLocalStager(dir, 0, zap.NewNop()), store, time.Hour, zap.NewNop())

	store.On("PutFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	store.On("PresignGet", mock.Anything, mock.Anything, time.Hour).Return("", errors.New("no creds")).Once()
	store.On("Delete", mock.Anything, mock.Anything).Return(errors.New("still no creds")).Once()

	_, err := stager.Stage(context.Background(), strings.NewReader("audio"), "clip.mp3")

	assert.EqualError(t, err, "no creds")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "local file is removed even when the object delete fails")
	store.AssertExpectations(t)
}

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Upload.TempDir = t.TempDir()

	transcriber := testutil.NewMockTranscriber(t)

	stager, err := New(context.Background(), cfg, transcriber, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStager{}, stager)

	cfg.Staging.Backend = ""
	stager, err = New(context.Background(), cfg, transcriber, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStager{}, stager, "an empty backend stages locally")

	cfg.Staging.Backend = BackendMinIO
	stager, err = New(context.Background(), cfg, transcriber, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStager{}, stager, "providers without URL support stage locally")

	cfg.Staging.Backend = "ftp"
	_, err = New(context.Background(), cfg, transcriber, zap.NewNop())
	assert.Error(t, err)
}
