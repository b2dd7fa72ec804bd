// Package fyne provides the Fyne UI adapter.
// It hosts the visualizer widget in a single window and maps visualizer
// events to view updates.
package fyne

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/ports"
	"github.com/tejashwikalptaru/spacewave/internal/service"
)

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
// Implementations must accept calls from any goroutine.
type UIView interface {
	// RefreshVisual repaints the visualizer with the latest frame.
	RefreshVisual()

	// Full screen
	SetFullScreen(full bool)
	IsFullScreen() bool

	// SetStatus shows the visualizer state, e.g. in the window title.
	SetStatus(status domain.VisualizerStatus)

	// Notifications
	ShowNotification(title, message string)
}

// Presenter coordinates between the visualizer service and the view.
//
// Responsibilities:
// - Subscribe to visualizer events on the event bus
// - Map events to view updates
// - Translate UI commands to service calls
//
// Thread-safety: event handlers run on the tick goroutine; all state is
// guarded by mu.
type Presenter struct {
	logger *slog.Logger

	visualizer *service.VisualizerService
	eventBus   ports.EventBus
	view       UIView

	mu            sync.Mutex
	subscriptions []domain.SubscriptionID
	errorShown    bool

	shutdownOnce sync.Once
}

// NewPresenter creates a presenter and subscribes it to visualizer events.
func NewPresenter(
	logger *slog.Logger,
	visualizer *service.VisualizerService,
	eventBus ports.EventBus,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger:     logger,
		visualizer: visualizer,
		eventBus:   eventBus,
		view:       view,
	}

	p.subscribeToEvents()
	p.view.SetStatus(visualizer.Status())

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := []struct {
		eventType domain.EventType
		handler   domain.EventHandler
	}{
		{domain.EventVisualFrame, p.onFrame},
		{domain.EventVisualCleared, p.onCleared},
		{domain.EventVisualStarted, p.onStarted},
		{domain.EventVisualStopped, p.onStopped},
		{domain.EventVisualResized, p.onResized},
		{domain.EventVisualSourceEnded, p.onSourceEnded},
		{domain.EventVisualError, p.onError},
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sub := range subscriptions {
		p.subscriptions = append(p.subscriptions, p.eventBus.Subscribe(sub.eventType, sub.handler))
	}
}

// Event handlers

func (p *Presenter) onFrame(domain.Event) {
	p.view.RefreshVisual()
}

func (p *Presenter) onCleared(domain.Event) {
	p.view.RefreshVisual()
}

func (p *Presenter) onStarted(domain.Event) {
	p.mu.Lock()
	p.errorShown = false
	p.mu.Unlock()

	p.view.SetStatus(p.visualizer.Status())
}

func (p *Presenter) onStopped(domain.Event) {
	p.view.SetStatus(domain.StatusStopped)
}

func (p *Presenter) onResized(event domain.Event) {
	e, ok := event.(domain.VisualResizedEvent)
	if !ok {
		return
	}
	p.logger.Debug("visualizer grid changed",
		slog.Int("cols", e.Cols),
		slog.Int("rows", e.Rows))
}

func (p *Presenter) onSourceEnded(event domain.Event) {
	e, ok := event.(domain.VisualSourceEndedEvent)
	if !ok {
		return
	}
	p.view.ShowNotification("Input Finished", fmt.Sprintf("%s has no more samples", e.Source))
}

// onError reports the first failure after each start; the rest are only logged.
func (p *Presenter) onError(event domain.Event) {
	e, ok := event.(domain.VisualErrorEvent)
	if !ok {
		return
	}

	p.mu.Lock()
	shown := p.errorShown
	p.errorShown = true
	p.mu.Unlock()

	if shown {
		p.logger.Debug("visualizer error suppressed", slog.Any("error", e.Err))
		return
	}
	p.view.ShowNotification("Input Error", e.Err.Error())
}

// UI Command handlers (called by UI)

// OnToggleFullScreen switches the window in and out of full screen.
func (p *Presenter) OnToggleFullScreen() {
	p.view.SetFullScreen(!p.view.IsFullScreen())
}

// OnExitFullScreen leaves full screen if active.
func (p *Presenter) OnExitFullScreen() {
	if p.view.IsFullScreen() {
		p.view.SetFullScreen(false)
	}
}

// OnStartStopRequested starts a stopped visualizer and stops a running one.
func (p *Presenter) OnStartStopRequested() {
	if p.visualizer.Status() != domain.StatusStopped {
		p.visualizer.Stop()
		return
	}
	if err := p.visualizer.Start(); err != nil && !errors.Is(err, domain.ErrAlreadyRunning) {
		p.logger.Error("failed to start visualizer", slog.Any("error", err))
		p.view.ShowNotification("Error", fmt.Sprintf("Failed to start visualizer: %v", err))
	}
}

// OnVisibilityChanged pauses the visualizer while the window is hidden.
func (p *Presenter) OnVisibilityChanged(visible bool) {
	p.visualizer.SetVisible(visible)
	p.view.SetStatus(p.visualizer.Status())
}

// Shutdown unsubscribes from the event bus. It is idempotent.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		subs := p.subscriptions
		p.subscriptions = nil
		p.mu.Unlock()

		for _, id := range subs {
			p.eventBus.Unsubscribe(id)
		}
	})
}
