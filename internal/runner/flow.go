package runner

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/streamqa/twitchsmoke/internal/config"
	"github.com/streamqa/twitchsmoke/internal/pages"
	"github.com/streamqa/twitchsmoke/internal/store"
)

// TestName identifies the one flow this suite automates.
const TestName = "search_and_navigate_to_streamer"

// flowEnv holds the page objects one worker drives.
type flowEnv struct {
	home     *pages.HomePage
	search   *pages.SearchPage
	streamer *pages.StreamerPage
	rnd      *rand.Rand
}

// flowStep is one named step of the search flow. The step may annotate its
// store record (detail, screenshot path) before returning.
type flowStep struct {
	name string
	fn   func(env *flowEnv, rec *store.Step) error
}

// searchFlow returns the ordered steps of the mobile search flow:
// open home, tap browse, search, scroll, pick a channel, wait for the
// player, screenshot.
func searchFlow(cfg *config.Config) []flowStep {
	return []flowStep{
		{
			name: "open home page",
			fn: func(env *flowEnv, rec *store.Step) error {
				if err := env.home.Open(); err != nil {
					return err
				}
				url, err := env.home.CurrentURL()
				if err != nil {
					return err
				}
				if !strings.Contains(strings.ToLower(url), "twitch.tv") {
					return fmt.Errorf("not on twitch after navigation: %s", url)
				}
				return nil
			},
		},
		{
			name: "tap browse",
			fn: func(env *flowEnv, rec *store.Step) error {
				return env.home.TapBrowse()
			},
		},
		{
			name: "search directory",
			fn: func(env *flowEnv, rec *store.Step) error {
				rec.Detail = cfg.Suite.Query
				return env.search.Search(cfg.Suite.Query)
			},
		},
		{
			name: "scroll results",
			fn: func(env *flowEnv, rec *store.Step) error {
				rec.Detail = fmt.Sprintf("%d times", cfg.Suite.ScrollTimes)
				return env.search.ScrollTimes(cfg.Suite.ScrollTimes)
			},
		},
		{
			name: "select random channel",
			fn: func(env *flowEnv, rec *store.Step) error {
				return env.search.SelectRandomChannel(env.rnd)
			},
		},
		{
			name: "wait for streamer page",
			fn: func(env *flowEnv, rec *store.Step) error {
				env.streamer.WaitLoaded(30 * time.Second)
				if !env.streamer.VerifyLoaded() {
					return fmt.Errorf("streamer page did not load correctly")
				}
				rec.Detail = env.streamer.Info().Name
				return nil
			},
		},
		{
			name: "capture screenshot",
			fn: func(env *flowEnv, rec *store.Step) error {
				path, err := env.streamer.CaptureScreenshot("")
				if err != nil {
					return err
				}
				rec.ScreenshotPath = path
				return nil
			},
		},
	}
}

// FailureShotName builds the file name for a screenshot taken at the point
// of failure.
func FailureShotName(test string, ts time.Time, worker, device string) string {
	device = strings.ReplaceAll(device, " ", "")
	test = strings.ReplaceAll(test, " ", "_")
	return fmt.Sprintf("FAILED_%s_%s_%s_%s.png", test, ts.Format("20060102_150405"), worker, device)
}

// WorkerID names a worker the way distributed test runners do.
func WorkerID(i int) string {
	return fmt.Sprintf("gw%d", i)
}
