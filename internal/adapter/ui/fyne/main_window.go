package fyne

import (
	"fmt"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
)

// Default window size.
const (
	WIDTH  = 480
	HEIGHT = 160
)

// MainWindow is the visualizer window implementing the UIView interface.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just paints the widget
// - All behaviour is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	title  string

	// UI components
	visual *widgets.SpaceWave

	// Lifecycle management
	closeOnce     sync.Once
	onBeforeClose func()

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates the window hosting a SpaceWave widget over source.
func NewMainWindow(app fyneapp.App, title string, source widgets.FrameSource) *MainWindow {
	w := &MainWindow{
		app:   app,
		title: title,
	}

	w.window = app.NewWindow(title)
	w.visual = widgets.NewSpaceWave(source)
	w.window.SetContent(w.visual)
	w.window.SetPadded(false)
	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))

	w.window.SetOnClosed(func() {
		if w.onBeforeClose != nil {
			w.onBeforeClose()
		}
	})

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.visual.SetOnDoubleTapped(presenter.OnToggleFullScreen)
	w.addShortcuts()
}

// SetOnBeforeClose sets a callback run when the window closes.
func (w *MainWindow) SetOnBeforeClose(callback func()) {
	w.onBeforeClose = callback
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().SetOnTypedKey(func(ev *fyneapp.KeyEvent) {
		if w.presenter == nil {
			return
		}
		switch ev.Name {
		case fyneapp.KeyF11, fyneapp.KeyF:
			w.presenter.OnToggleFullScreen()
		case fyneapp.KeyEscape:
			w.presenter.OnExitFullScreen()
		case fyneapp.KeySpace:
			w.presenter.OnStartStopRequested()
		}
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// Visual returns the visualizer widget.
func (w *MainWindow) Visual() *widgets.SpaceWave {
	return w.visual
}

// UIView interface implementation

// RefreshVisual repaints the widget on the UI goroutine.
func (w *MainWindow) RefreshVisual() {
	fyneapp.Do(w.visual.Refresh)
}

// SetFullScreen enters or leaves full screen.
func (w *MainWindow) SetFullScreen(full bool) {
	fyneapp.Do(func() {
		w.window.SetFullScreen(full)
	})
}

// IsFullScreen reports whether the window is full screen.
func (w *MainWindow) IsFullScreen() bool {
	return w.window.FullScreen()
}

// SetStatus shows paused and stopped states in the title.
func (w *MainWindow) SetStatus(status domain.VisualizerStatus) {
	title := w.title
	if status != domain.StatusRunning {
		title = fmt.Sprintf("%s (%s)", w.title, status)
	}
	fyneapp.Do(func() {
		w.window.SetTitle(title)
	})
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
