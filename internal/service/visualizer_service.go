// Package service hosts the visualizer: it owns the tick loop that pulls
// samples from a source and advances the spectrum processor.
package service

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/ports"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
)

// DefaultTickInterval is the default time between analysis ticks.
const DefaultTickInterval = 14 * time.Millisecond

// VisualizerService drives a spectrum.Processor from a timer.
//
// The ticker runs only while the visualizer is both running and visible.
// Ticks never overlap: a single goroutine owns the ticker and each tick
// completes before the next is read. All exported methods are safe for
// concurrent use; readers get copies of the latest frame via Snapshot.
type VisualizerService struct {
	// Dependencies (injected)
	logger *slog.Logger
	source ports.SampleSource
	bus    ports.EventBus

	interval time.Duration

	// State
	mu        sync.Mutex
	processor *spectrum.Processor
	window    domain.SampleWindow
	viewport  domain.Viewport
	frame     spectrum.Frame
	seq       uint64
	running   bool
	visible   bool

	// Loop control
	loopRunning  bool
	stopLoop     chan struct{}
	loopWg       sync.WaitGroup
	shutdownOnce sync.Once
}

// NewVisualizerService creates a stopped, visible visualizer.
// A non-positive interval falls back to DefaultTickInterval.
func NewVisualizerService(
	logger *slog.Logger,
	source ports.SampleSource,
	bus ports.EventBus,
	cfg spectrum.Config,
	interval time.Duration,
) *VisualizerService {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	processor := spectrum.NewProcessor(cfg)

	s := &VisualizerService{
		logger:    logger,
		source:    source,
		bus:       bus,
		interval:  interval,
		processor: processor,
		window:    domain.NewSampleWindow(spectrumWindowSize(processor)),
		visible:   true,
	}

	logger.Debug("visualizer service initialized",
		slog.String("source", source.Name()),
		slog.Duration("interval", interval),
		slog.Int("bins", cfg.Bins))

	return s
}

// spectrumWindowSize returns the per-channel window length, never shorter
// than the transform input.
func spectrumWindowSize(p *spectrum.Processor) int {
	return max(domain.DefaultNodeSize, 2*p.Config().Bins)
}

// Interval returns the tick interval.
func (s *VisualizerService) Interval() time.Duration { return s.interval }

// Start begins producing ticks. Starting twice returns domain.ErrAlreadyRunning.
func (s *VisualizerService) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return domain.ErrAlreadyRunning
	}
	s.running = true
	if s.visible {
		s.startLoopLocked()
	}
	s.mu.Unlock()

	s.logger.Info("visualizer started", slog.Duration("interval", s.interval))
	s.bus.Publish(domain.NewVisualStartedEvent(s.interval))
	return nil
}

// Stop halts ticks and clears all column state. Stopping a stopped
// visualizer is a no-op.
func (s *VisualizerService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.stopLoopLocked()
	s.mu.Unlock()

	// Release the lock before waiting; the loop may be inside Tick.
	s.loopWg.Wait()

	s.Clear()
	s.logger.Info("visualizer stopped")
	s.bus.Publish(domain.NewVisualStoppedEvent())
}

// Clear forgets the grid and all column state. The next tick starts from zero.
func (s *VisualizerService) Clear() {
	s.mu.Lock()
	s.processor.Reset()
	s.frame = spectrum.Frame{}
	s.seq = 0
	s.mu.Unlock()

	s.bus.Publish(domain.NewVisualClearedEvent())
}

// SetVisible pauses the ticker while the surface is hidden and resumes it
// when shown again, if the visualizer is running.
func (s *VisualizerService) SetVisible(visible bool) {
	s.mu.Lock()
	if s.visible == visible {
		s.mu.Unlock()
		return
	}
	s.visible = visible

	wait := false
	switch {
	case visible && s.running:
		s.startLoopLocked()
	case !visible:
		wait = s.loopRunning
		s.stopLoopLocked()
	}
	s.mu.Unlock()

	if wait {
		s.loopWg.Wait()
	}
	s.logger.Debug("visualizer visibility changed", slog.Bool("visible", visible))
}

// SetViewport records the paint surface size used by the next tick.
func (s *VisualizerService) SetViewport(vp domain.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = vp
}

// Viewport returns the current paint surface size.
func (s *VisualizerService) Viewport() domain.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// Status reports the lifecycle state.
func (s *VisualizerService) Status() domain.VisualizerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.running:
		return domain.StatusStopped
	case !s.visible:
		return domain.StatusHidden
	default:
		return domain.StatusRunning
	}
}

// Snapshot returns a copy of the latest frame and the number of frames
// processed since the last clear.
func (s *VisualizerService) Snapshot() (spectrum.Frame, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame.Clone(), s.seq
}

// Cell returns the configured cell size, needed to render snapshots.
func (s *VisualizerService) Cell() domain.CellSize {
	return s.processor.Config().Cell
}

// Tick runs one analysis cycle synchronously. The tick loop calls it on
// every timer fire; it is exported so hosts and tests can step manually.
//
// A source without data this tick leaves the frame unchanged. Source errors
// are logged and published, and the tick is skipped. io.EOF is returned when
// a finite source is exhausted.
func (s *VisualizerService) Tick() error {
	s.mu.Lock()
	ok, err := s.source.Take(&s.window)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		s.logger.Warn("sample source failed", slog.String("source", s.source.Name()), slog.Any("error", err))
		s.bus.Publish(domain.NewVisualErrorEvent(err))
		return err
	}
	if !ok {
		s.mu.Unlock()
		return nil
	}

	vp := s.viewport
	resized := s.processor.Resize(vp)
	frame := s.processor.Step(s.window, vp)
	s.frame.Columns = append(s.frame.Columns[:0], frame.Columns...)
	s.frame.Cols, s.frame.Rows, s.frame.Scale = frame.Cols, frame.Rows, frame.Scale
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if resized {
		s.logger.Debug("visualizer grid resized",
			slog.Int("cols", frame.Cols),
			slog.Int("rows", frame.Rows),
			slog.Int("width", vp.Width),
			slog.Int("height", vp.Height))
		s.bus.Publish(domain.NewVisualResizedEvent(vp, frame.Cols, frame.Rows))
	}
	if s.bus.HasSubscribers(domain.EventVisualFrame) {
		s.bus.Publish(domain.NewVisualFrameEvent(seq))
	}
	return nil
}

// Shutdown stops the visualizer and closes the source. It is idempotent.
func (s *VisualizerService) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		s.Stop()

		// Hidden visualizers may still own a stopped loop; wait for it too.
		s.mu.Lock()
		s.stopLoopLocked()
		s.mu.Unlock()
		s.loopWg.Wait()

		if cerr := s.source.Close(); cerr != nil {
			err = domain.NewServiceError("VisualizerService", "Shutdown", "failed to close sample source", cerr)
		}
		s.logger.Debug("visualizer service shut down")
	})
	return err
}

// startLoopLocked starts the tick goroutine. Callers hold s.mu.
func (s *VisualizerService) startLoopLocked() {
	if s.loopRunning {
		return
	}
	s.loopRunning = true
	stop := make(chan struct{})
	s.stopLoop = stop
	s.loopWg.Add(1)
	go s.run(stop)
}

// stopLoopLocked signals the tick goroutine to exit. Callers hold s.mu and
// wait on loopWg after releasing it.
func (s *VisualizerService) stopLoopLocked() {
	if !s.loopRunning {
		return
	}
	close(s.stopLoop)
	s.loopRunning = false
}

func (s *VisualizerService) run(stop chan struct{}) {
	defer s.loopWg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := s.Tick(); errors.Is(err, io.EOF) {
				s.sourceEnded(stop)
				return
			}
		}
	}
}

// sourceEnded stops the visualizer from inside the loop goroutine once the
// source is exhausted. It must not wait on loopWg.
func (s *VisualizerService) sourceEnded(stop chan struct{}) {
	s.mu.Lock()
	if s.loopRunning && s.stopLoop == stop {
		s.loopRunning = false
	}
	wasRunning := s.running
	s.running = false
	s.processor.Reset()
	s.frame = spectrum.Frame{}
	s.seq = 0
	s.mu.Unlock()

	s.logger.Info("sample source ended", slog.String("source", s.source.Name()))
	s.bus.Publish(domain.NewVisualSourceEndedEvent(s.source.Name()))
	if wasRunning {
		s.bus.Publish(domain.NewVisualClearedEvent())
		s.bus.Publish(domain.NewVisualStoppedEvent())
	}
}
