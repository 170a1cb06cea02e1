package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Spinner shows an indeterminate activity indicator while a single
// transcription runs. A disabled Spinner is a no-op.
type Spinner struct {
	container *mpb.Progress
	bar       *mpb.Bar
	once      sync.Once
}

// StartSpinner starts a spinner labelled with description.
func StartSpinner(config Config, description string) *Spinner {
	if !config.Enabled {
		return &Spinner{}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	// A zero total counts as already complete, which would make Abort a no-op.
	bar := container.AddSpinner(1,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace), "✓"),
				"✗",
			),
		),
	)

	return &Spinner{container: container, bar: bar}
}

// Done marks the work as finished and waits for the final render.
func (s *Spinner) Done() {
	s.finish(func(bar *mpb.Bar) { bar.Increment() })
}

// Fail marks the work as failed and waits for the final render.
func (s *Spinner) Fail() {
	s.finish(func(bar *mpb.Bar) { bar.Abort(false) })
}

func (s *Spinner) finish(stop func(*mpb.Bar)) {
	if s.container == nil {
		return
	}
	s.once.Do(func() {
		stop(s.bar)
		s.container.Wait()
	})
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ShouldShowProgress reports whether an interactive indicator makes sense.
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	return IsTTY(os.Stderr)
}
