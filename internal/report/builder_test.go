package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamqa/twitchsmoke/internal/store"
)

func sampleRuns() []store.Run {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []store.Run{
		{
			Test:       "search_and_navigate_to_streamer",
			Device:     "Pixel 5",
			Query:      "StarCraft II",
			Status:     store.StatusPassed,
			StartedAt:  started,
			FinishedAt: started.Add(40 * time.Second),
			Steps: []store.Step{
				{Name: "open home page", Status: store.StatusPassed, Duration: 3 * time.Second},
				{Name: "capture screenshot", Status: store.StatusPassed, Duration: time.Second, ScreenshotPath: "screenshots/streamer_a.png"},
			},
		},
		{
			Test:          "search_and_navigate_to_streamer",
			Device:        "iPhone 12",
			Query:         "StarCraft II",
			Status:        store.StatusFailed,
			FailureReason: "select random channel: no channel cards found in results",
			StartedAt:     started,
			FinishedAt:    started.Add(25 * time.Second),
			Steps: []store.Step{
				{Name: "open home page", Status: store.StatusPassed, Duration: 3 * time.Second},
				{Name: "select random channel", Status: store.StatusFailed, Duration: 20 * time.Second, ScreenshotPath: "screenshots/FAILED_x.png"},
			},
		},
	}
}

func sampleMeta() Metadata {
	return Metadata{
		BaseURL:         "https://m.twitch.tv/",
		Headless:        true,
		MobileEmulation: true,
		Devices:         []string{"Pixel 5", "iPhone 12"},
		Query:           "StarCraft II",
	}
}

func TestBuildRendersRunsAndMetadata(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	rep, err := b.Build(sampleMeta(), sampleRuns())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Passed)
	assert.Equal(t, 1, rep.Failed)

	html := rep.HTMLBody
	assert.Contains(t, html, "https://m.twitch.tv/")
	assert.Contains(t, html, "Pixel 5, iPhone 12")
	assert.Contains(t, html, "StarCraft II")
	assert.Contains(t, html, "PASSED")
	assert.Contains(t, html, "FAILED")
	assert.Contains(t, html, "no channel cards found")
	assert.Contains(t, html, `href="screenshots/streamer_a.png"`)
	// the metadata header carries the Go version the suite ran under
	assert.Contains(t, html, "Go: go1")
}

func TestBuildSubjectSummarizesCounts(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	rep, err := b.Build(sampleMeta(), sampleRuns())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rep.Subject, "Twitch smoke: 1 passed, 1 failed"), rep.Subject)
}

func TestBuildPlainText(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	rep, err := b.Build(sampleMeta(), sampleRuns())
	require.NoError(t, err)

	assert.Contains(t, rep.PlainBody, "Passed: 1  Failed: 1")
	assert.Contains(t, rep.PlainBody, "[failed] search_and_navigate_to_streamer on iPhone 12")
	assert.Contains(t, rep.PlainBody, "no channel cards found")
}

func TestBuildRejectsEmptyRuns(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	_, err = b.Build(sampleMeta(), nil)
	assert.Error(t, err)
}

func TestWriteCreatesTimestampedFile(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	rep, err := b.Build(sampleMeta(), sampleRuns())
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := rep.Write(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "report_"))
	assert.True(t, strings.HasSuffix(path, ".html"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Twitch Mobile Smoke Report")
}

func TestBuildEscapesHTMLInFailureReason(t *testing.T) {
	b, err := New()
	require.NoError(t, err)

	runs := sampleRuns()
	runs[1].FailureReason = `<script>alert("x")</script>`

	rep, err := b.Build(sampleMeta(), runs)
	require.NoError(t, err)

	assert.NotContains(t, rep.HTMLBody, `<script>alert`)
	assert.Contains(t, rep.HTMLBody, "&lt;script&gt;")
}
