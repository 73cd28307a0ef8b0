package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(status string, started time.Time) *Run {
	return &Run{
		Test:       "search_and_navigate_to_streamer",
		Device:     "Pixel 5",
		Query:      "StarCraft II",
		Status:     status,
		StartedAt:  started,
		FinishedAt: started.Add(45 * time.Second),
		Steps: []Step{
			{Name: "open home page", Status: StatusPassed, Duration: 3 * time.Second},
			{Name: "tap browse", Status: StatusPassed, Duration: 2 * time.Second},
			{Name: "capture screenshot", Status: status, Duration: time.Second, ScreenshotPath: "screenshots/streamer_x.png"},
		},
	}
}

func TestSaveRunAssignsIDs(t *testing.T) {
	s := newTestStore(t)

	r := testRun(StatusPassed, time.Now())
	require.NoError(t, s.SaveRun(r))

	assert.NotZero(t, r.ID)
	for _, st := range r.Steps {
		assert.NotZero(t, st.ID)
		assert.Equal(t, r.ID, st.RunID)
	}
}

func TestRecentRunsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	old := testRun(StatusPassed, time.Now().Add(-time.Hour))
	recent := testRun(StatusFailed, time.Now())
	recent.FailureReason = "capture screenshot: boom"
	require.NoError(t, s.SaveRun(old))
	require.NoError(t, s.SaveRun(recent))

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// newest first
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, "capture screenshot: boom", runs[0].FailureReason)
	assert.Equal(t, "Pixel 5", runs[0].Device)

	require.Len(t, runs[0].Steps, 3)
	assert.Equal(t, "open home page", runs[0].Steps[0].Name)
	assert.Equal(t, 3*time.Second, runs[0].Steps[0].Duration)
	assert.Equal(t, "screenshots/streamer_x.png", runs[0].Steps[2].ScreenshotPath)
}

func TestRecentRunsHonorsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveRun(testRun(StatusPassed, time.Now().Add(time.Duration(i)*time.Minute))))
	}

	runs, err := s.RecentRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestFailureCountSince(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveRun(testRun(StatusFailed, time.Now().Add(-2*time.Hour))))
	require.NoError(t, s.SaveRun(testRun(StatusFailed, time.Now())))
	require.NoError(t, s.SaveRun(testRun(StatusPassed, time.Now())))

	n, err := s.FailureCountSince(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
