package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/spacewave/internal/domain"
	"github.com/tejashwikalptaru/spacewave/internal/spectrum"
	"github.com/tejashwikalptaru/spacewave/internal/testutil"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	config := DefaultConfig()
	config.TestFyneApp = test.NewTempApp(t)
	config.TickInterval = 2 * time.Millisecond
	config.LogLevel = "error"
	return config
}

// writeSilence writes a short 16-bit mono WAV file and returns its path.
func writeSilence(t *testing.T, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, frames),
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app)

	// Verify all components were created
	assert.NotNil(t, app.GetVisualizer())
	assert.NotNil(t, app.GetEventBus())
	assert.NotNil(t, app.GetFyneApp())
	assert.NotNil(t, app.GetMainWindow())
	assert.Equal(t, "synth:sweep", app.GetSource().Name())
	assert.Equal(t, domain.StatusStopped, app.GetVisualizer().Status())

	// Cleanup
	assert.NoError(t, app.Shutdown())
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	config := testConfig(t)
	config.Visual.Bins = 0

	app, err := NewApplication(config)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewApplicationMissingInput(t *testing.T) {
	config := testConfig(t)
	config.Input = filepath.Join(t.TempDir(), "missing.wav")

	app, err := NewApplication(config)
	assert.Nil(t, app)
	assert.Error(t, err)
}

func TestNewApplicationWithWAVInput(t *testing.T) {
	config := testConfig(t)
	config.Input = writeSilence(t, 800)

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, config.Input, app.GetSource().Name())
}

func TestApplicationLifecycle(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreFyneGoroutines()...)

	app, err := NewApplication(testConfig(t))
	require.NoError(t, err)

	// Run would block on the window; start the visualizer directly.
	require.NoError(t, app.Start())
	app.GetVisualizer().SetViewport(domain.Viewport{Width: 62, Height: 42})
	require.Eventually(t, func() bool {
		_, seq := app.GetVisualizer().Snapshot()
		return seq > 0
	}, time.Second, 2*time.Millisecond)

	assert.NoError(t, app.Shutdown())
	assert.Equal(t, domain.StatusStopped, app.GetVisualizer().Status())

	// Shutdown again should not panic
	assert.NoError(t, app.Shutdown())
}

func TestApplicationStopsWhenInputEnds(t *testing.T) {
	config := testConfig(t)
	config.Input = writeSilence(t, 80)

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	ended := make(chan struct{}, 1)
	app.GetEventBus().Subscribe(domain.EventVisualSourceEnded, func(domain.Event) {
		ended <- struct{}{}
	})

	require.NoError(t, app.Start())
	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("source end was not reported")
	}
	assert.Eventually(t, func() bool {
		return app.GetVisualizer().Status() == domain.StatusStopped
	}, time.Second, 2*time.Millisecond)
}

func TestApplicationVisualConfig(t *testing.T) {
	config := testConfig(t)
	config.Visual.ScaleMode = spectrum.ScalePeak
	config.Visual.Cell = domain.CellSize{Width: 4, Height: 4}

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, config.Visual.Cell, app.GetVisualizer().Cell())
}

func TestVersionInfo(t *testing.T) {
	info := VersionInfo{Version: "dev", GitCommit: "abc123", BuildTime: "now"}
	assert.Equal(t, "dev", info.String())
	assert.Equal(t, "SpaceWave dev (commit: abc123, built: now)", info.FullString())

	info.GitTag = "v1.2.0"
	assert.Equal(t, "v1.2.0", info.String())
}
