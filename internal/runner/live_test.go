package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/streamqa/twitchsmoke/internal/config"
	"github.com/streamqa/twitchsmoke/internal/store"
)

// liveConfig builds a config pointing all artifacts at a temp dir.
// Live tests run against m.twitch.tv and need Chrome; set
// TWITCHSMOKE_LIVE=1 to enable them.
func liveConfig(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("TWITCHSMOKE_LIVE") == "" {
		t.Skip("set TWITCHSMOKE_LIVE=1 to run live browser tests")
	}

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Browser.Headless = true
	cfg.Artifacts.ScreenshotDir = filepath.Join(dir, "screenshots")
	cfg.Artifacts.LogDir = filepath.Join(dir, "logs")
	cfg.Artifacts.ReportDir = filepath.Join(dir, "reports")
	cfg.Artifacts.DataDir = filepath.Join(dir, "data")
	require.NoError(t, cfg.EnsureDirs())
	return cfg
}

func newLiveRunner(t *testing.T, cfg *config.Config) *Runner {
	t.Helper()

	st, err := store.New(filepath.Join(cfg.Artifacts.DataDir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	r, err := New(cfg, zaptest.NewLogger(t), st, 1)
	require.NoError(t, err)
	return r
}

func TestLiveSearchAndNavigateToStreamer(t *testing.T) {
	cfg := liveConfig(t)
	r := newLiveRunner(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := r.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Runs, 1)

	run := result.Runs[0]
	assert.Equal(t, store.StatusPassed, run.Status, "failure reason: %s", run.FailureReason)

	// screenshot was captured on the streamer page
	last := run.Steps[len(run.Steps)-1]
	assert.Equal(t, "capture screenshot", last.Name)
	assert.FileExists(t, last.ScreenshotPath)

	// report exists and names the run
	assert.FileExists(t, result.ReportPath)
}

func TestLiveMultipleDevices(t *testing.T) {
	cfg := liveConfig(t)
	cfg.Suite.Devices = []string{"Pixel 5", "iPhone 12"}
	cfg.Suite.Workers = 2
	r := newLiveRunner(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := r.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Runs, 2)

	devices := []string{result.Runs[0].Device, result.Runs[1].Device}
	assert.ElementsMatch(t, []string{"Pixel 5", "iPhone 12"}, devices)
}

func TestLiveUnlikelyQueryFailsGracefully(t *testing.T) {
	cfg := liveConfig(t)
	cfg.Suite.Query = "ThisIsAVeryUnlikelySearchQueryWithNoResults12345"
	r := newLiveRunner(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// the suite must not crash: a no-results query becomes a failed run
	// with a recorded reason, not an error from Run itself
	result, err := r.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Runs, 1)

	if result.Runs[0].Status == store.StatusFailed {
		assert.NotEmpty(t, result.Runs[0].FailureReason)
	}
	assert.FileExists(t, result.ReportPath)
}
