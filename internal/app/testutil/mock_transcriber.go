package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"transcribe-relay/internal/app/api/provider"
)

// MockTranscriber is a testify mock of provider.Transcriber. Besides the
// usual expectations it records what the source looked like at call time,
// so tests can assert on temporary files that are gone afterwards.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	ProviderName string
	URLSupport   bool

	callHistory []TranscriptionCall
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	Source    string
	Existed   bool
	Content   []byte
	Timestamp time.Time
}

// NewMockTranscriber creates a MockTranscriber bound to t.
func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{ProviderName: "mock"}
	m.Test(t)
	return m
}

// Name implements provider.Transcriber.
func (m *MockTranscriber) Name() string { return m.ProviderName }

// SupportsURL implements provider.Transcriber.
func (m *MockTranscriber) SupportsURL() bool { return m.URLSupport }

// Transcribe implements provider.Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, source string) (*provider.TranscriptResult, error) {
	call := TranscriptionCall{Source: source, Timestamp: time.Now()}
	if !provider.IsRemoteSource(source) {
		if content, err := os.ReadFile(source); err == nil {
			call.Existed = true
			call.Content = content
		}
	}

	m.mu.Lock()
	m.callHistory = append(m.callHistory, call)
	m.mu.Unlock()

	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TranscriptResult), args.Error(1)
}

// CallHistory returns a copy of all recorded calls.
func (m *MockTranscriber) CallHistory() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]TranscriptionCall, len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// LastCall returns the most recent call. It panics when there was none.
func (m *MockTranscriber) LastCall() TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callHistory[len(m.callHistory)-1]
}
