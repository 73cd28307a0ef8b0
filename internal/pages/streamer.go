package pages

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StreamerPage drives an individual channel page with the video player.
type StreamerPage struct {
	*Page
}

// ChannelInfo describes the channel the browser landed on.
type ChannelInfo struct {
	Name  string
	Title string
	URL   string
}

// NewStreamerPage creates the streamer page object.
func NewStreamerPage(p *Page) *StreamerPage {
	return &StreamerPage{Page: p}
}

// DismissModals clears anything that may sit in front of the player:
// the mature content gate, generic close buttons, and blocking overlays.
// All checks are best-effort.
func (sp *StreamerPage) DismissModals() {
	sp.log.Info("checking for modals")

	if sp.IsVisible(MatureGateButton, 5*time.Second) {
		sp.log.Info("mature content gate detected")
		if err := sp.Click(MatureGateButton); err != nil {
			sp.log.Debug("mature gate not clickable", zap.Error(err))
		}
	}

	if sp.IsVisible(CloseModalButton, 3*time.Second) {
		sp.log.Info("modal close button detected")
		if err := sp.Click(CloseModalButton); err != nil {
			sp.log.Debug("modal close button not clickable", zap.Error(err))
		} else {
			time.Sleep(time.Second)
		}
	}

	if sp.IsVisible(Overlay, 3*time.Second) {
		sp.log.Info("overlay detected, sending escape")
		if err := sp.PressEscape(); err != nil {
			sp.log.Debug("escape failed", zap.Error(err))
		} else {
			time.Sleep(time.Second)
		}
	}
}

// WaitLoaded waits for the channel page to become watchable: modals
// cleared, spinner gone, and the video player present, with the chat
// welcome message accepted as a fallback signal. Timeouts are tolerated;
// the caller verifies the page afterwards.
func (sp *StreamerPage) WaitLoaded(timeout time.Duration) {
	sp.log.Info("waiting for streamer page", zap.Duration("timeout", timeout))
	start := time.Now()

	sp.DismissModals()

	if sp.IsVisible(LoadingSpinner, time.Second) {
		sp.WaitGone(LoadingSpinner, 10*time.Second)
	}

	sp.WaitReady(15 * time.Second)

	if err := sp.Find(VideoPlayer, 15*time.Second); err != nil {
		sp.log.Warn("video player not found, trying chat welcome fallback")
		if err := sp.Find(ChatWelcome, 10*time.Second); err != nil {
			sp.log.Warn("neither video player nor chat welcome found")
		}
	}

	time.Sleep(3 * time.Second) // player initialization

	if sp.IsVisible(BufferingIndicator, 2*time.Second) {
		sp.log.Info("stream buffering, waiting")
		time.Sleep(5 * time.Second)
	}

	sp.log.Info("streamer page load finished", zap.Duration("elapsed", time.Since(start)))
}

// PlayerVisible reports whether the video player is visible, falling back
// to the chat welcome message.
func (sp *StreamerPage) PlayerVisible() bool {
	if sp.IsVisible(VideoPlayer, 5*time.Second) {
		return true
	}
	sp.log.Debug("video player not visible, checking chat welcome")
	return sp.IsVisible(ChatWelcome, 5*time.Second)
}

// VerifyLoaded checks that the browser is on a channel page and its key
// elements exist.
func (sp *StreamerPage) VerifyLoaded() bool {
	url, err := sp.CurrentURL()
	if err != nil {
		sp.log.Error("could not read current url", zap.Error(err))
		return false
	}

	if !strings.Contains(url, "twitch.tv/") || strings.HasSuffix(strings.TrimRight(url, "/"), "twitch.tv") {
		sp.log.Error("url is not a channel page", zap.String("url", url))
		return false
	}

	if !sp.PlayerVisible() {
		sp.log.Error("channel page elements missing")
		return false
	}

	return true
}

// Info returns the current channel's name (from the URL), title when
// visible, and URL.
func (sp *StreamerPage) Info() ChannelInfo {
	info := ChannelInfo{Name: "unknown"}

	url, err := sp.CurrentURL()
	if err != nil {
		return info
	}
	info.URL = url
	if name := ChannelNameFromURL(url); name != "" {
		info.Name = name
	}

	if sp.IsVisible(StreamTitle, 3*time.Second) {
		if title, err := sp.Text(StreamTitle); err == nil {
			info.Title = title
		}
	}

	return info
}

// CaptureScreenshot saves a screenshot of the channel page. When filename
// is empty it is derived from the channel name and timestamp.
func (sp *StreamerPage) CaptureScreenshot(filename string) (string, error) {
	if filename == "" {
		info := sp.Info()
		filename = ScreenshotName(info.Name, time.Now())
	}

	if !sp.PlayerVisible() {
		sp.log.Warn("player may not be fully loaded, capturing anyway")
	}

	return sp.Screenshot(filename)
}

// ChannelNameFromURL extracts the channel name from a twitch.tv URL.
// Returns "" when the URL has no channel path.
func ChannelNameFromURL(url string) string {
	_, after, found := strings.Cut(url, "twitch.tv/")
	if !found {
		return ""
	}
	name := after
	if i := strings.IndexAny(name, "/?"); i >= 0 {
		name = name[:i]
	}
	return name
}

// ScreenshotName builds the channel screenshot file name.
func ScreenshotName(channel string, ts time.Time) string {
	channel = strings.ReplaceAll(channel, " ", "_")
	return fmt.Sprintf("streamer_%s_%s.png", channel, ts.Format("20060102_150405"))
}
