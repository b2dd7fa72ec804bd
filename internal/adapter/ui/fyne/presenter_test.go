package fyne

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/audio/synth"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/logger"
	"github.com/tejashwikalptaru/spacewave/internal/service"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
	"github.com/tejashwikalptaru/spacewave/internal/testutil"
)

const (
	testWait = time.Second
	testTick = 5 * time.Millisecond
)

// fakeView records view calls.
type fakeView struct {
	mu            sync.Mutex
	refreshes     int
	fullScreen    bool
	statuses      []domain.VisualizerStatus
	notifications []string
}

func (v *fakeView) RefreshVisual() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refreshes++
}

func (v *fakeView) SetFullScreen(full bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fullScreen = full
}

func (v *fakeView) IsFullScreen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fullScreen
}

func (v *fakeView) SetStatus(status domain.VisualizerStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, status)
}

func (v *fakeView) ShowNotification(title, _ string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifications = append(v.notifications, title)
}

func (v *fakeView) refreshCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.refreshes
}

func (v *fakeView) lastStatus() domain.VisualizerStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.statuses[len(v.statuses)-1]
}

func (v *fakeView) notified() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.notifications...)
}

type presenterFixture struct {
	presenter *Presenter
	service   *service.VisualizerService
	source    *synth.Source
	bus       *eventbus.SyncEventBus
	view      *fakeView
}

func setupPresenter(t *testing.T) presenterFixture {
	t.Helper()

	source, err := synth.NewSource(synth.DefaultConfig())
	require.NoError(t, err)

	bus := eventbus.NewSyncEventBus()
	svc := service.NewVisualizerService(logger.NewTestLogger(), source, bus, spectrum.DefaultConfig(), 2*time.Millisecond)
	svc.SetViewport(domain.Viewport{Width: 62, Height: 42})

	view := &fakeView{}
	p := NewPresenter(logger.NewTestLogger(), svc, bus, view)

	t.Cleanup(func() {
		p.Shutdown()
		_ = svc.Shutdown()
		_ = bus.Close()
	})
	return presenterFixture{presenter: p, service: svc, source: source, bus: bus, view: view}
}

func TestNewPresenterSyncsStatus(t *testing.T) {
	f := setupPresenter(t)

	assert.Equal(t, domain.StatusStopped, f.view.lastStatus())
	assert.Equal(t, 7, f.bus.SubscriberCount())
}

func TestPresenterRefreshesOnFrame(t *testing.T) {
	f := setupPresenter(t)

	require.NoError(t, f.service.Tick())
	require.NoError(t, f.service.Tick())
	assert.Equal(t, 2, f.view.refreshCount())

	f.service.Clear()
	assert.Equal(t, 3, f.view.refreshCount())
}

func TestPresenterStartStop(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := setupPresenter(t)

	f.presenter.OnStartStopRequested()
	assert.Equal(t, domain.StatusRunning, f.service.Status())
	assert.Equal(t, domain.StatusRunning, f.view.lastStatus())

	require.Eventually(t, func() bool { return f.view.refreshCount() > 0 }, testWait, testTick)

	f.presenter.OnStartStopRequested()
	assert.Equal(t, domain.StatusStopped, f.service.Status())
	assert.Equal(t, domain.StatusStopped, f.view.lastStatus())

	require.NoError(t, f.service.Shutdown())
}

func TestPresenterVisibility(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := setupPresenter(t)
	f.presenter.OnStartStopRequested()

	f.presenter.OnVisibilityChanged(false)
	assert.Equal(t, domain.StatusHidden, f.view.lastStatus())

	f.presenter.OnVisibilityChanged(true)
	assert.Equal(t, domain.StatusRunning, f.view.lastStatus())

	require.NoError(t, f.service.Shutdown())
}

func TestPresenterFullScreen(t *testing.T) {
	f := setupPresenter(t)

	f.presenter.OnToggleFullScreen()
	assert.True(t, f.view.IsFullScreen())

	f.presenter.OnExitFullScreen()
	assert.False(t, f.view.IsFullScreen())

	f.presenter.OnExitFullScreen()
	assert.False(t, f.view.IsFullScreen())
}

func TestPresenterReportsFirstErrorOnly(t *testing.T) {
	f := setupPresenter(t)
	f.source.SetFailTake(errors.New("device lost"))

	assert.Error(t, f.service.Tick())
	assert.Error(t, f.service.Tick())
	assert.Equal(t, []string{"Input Error"}, f.view.notified())

	// A new start re-arms the notification.
	f.bus.Publish(domain.NewVisualStartedEvent(time.Millisecond))
	assert.Error(t, f.service.Tick())
	assert.Equal(t, []string{"Input Error", "Input Error"}, f.view.notified())
}

func TestPresenterSourceEnded(t *testing.T) {
	f := setupPresenter(t)

	f.bus.Publish(domain.NewVisualSourceEndedEvent("song.wav"))
	assert.Equal(t, []string{"Input Finished"}, f.view.notified())
}

func TestPresenterShutdown(t *testing.T) {
	f := setupPresenter(t)

	f.presenter.Shutdown()
	f.presenter.Shutdown()
	assert.Equal(t, 0, f.bus.SubscriberCount())

	require.NoError(t, f.service.Tick())
	assert.Equal(t, 0, f.view.refreshCount())
}
