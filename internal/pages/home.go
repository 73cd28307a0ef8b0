package pages

import (
	"time"

	"go.uber.org/zap"
)

// HomePage drives the Twitch mobile home page.
type HomePage struct {
	*Page
}

// NewHomePage creates the home page object.
func NewHomePage(p *Page) *HomePage {
	return &HomePage{Page: p}
}

// Open navigates to the configured base URL and clears the banners Twitch
// shows on first visit. Banner handling is best-effort: absence is normal.
func (h *HomePage) Open() error {
	if err := h.Navigate(h.cfg.Browser.BaseURL); err != nil {
		return err
	}
	h.WaitReady(h.cfg.PageLoadTimeout())
	h.dismissConsentBanner()
	h.dismissAppUpsell()
	return nil
}

// dismissConsentBanner accepts or rejects the cookie banner if present.
func (h *HomePage) dismissConsentBanner() {
	if !h.IsVisible(ConsentBanner, 3*time.Second) {
		return
	}
	h.log.Info("consent banner detected")
	if err := h.Click(ConsentBanner); err != nil {
		h.log.Debug("consent banner not clickable", zap.Error(err))
		return
	}
	time.Sleep(time.Second)
}

// dismissAppUpsell closes the "Open in App" bottom sheet via the
// "Keep using web" button. Short timeout so absent sheets don't slow runs.
func (h *HomePage) dismissAppUpsell() {
	if !h.IsVisible(AppUpsellKeepWeb, 2*time.Second) {
		return
	}
	if err := h.Click(AppUpsellKeepWeb); err != nil {
		h.log.Debug("app upsell sheet not clickable", zap.Error(err))
		return
	}
	h.log.Info("closed app upsell sheet")
}

// TapBrowse opens the directory page via the Browse tab and waits for it
// to render.
func (h *HomePage) TapBrowse() error {
	h.log.Info("tapping browse")
	if err := h.Click(BrowseButton); err != nil {
		return err
	}

	// Directory page is ready when the Channels heading renders.
	if err := h.Find(ChannelsHeading, 10*time.Second); err != nil {
		return err
	}
	time.Sleep(time.Second) // buffer for dynamic content
	h.log.Info("directory page loaded")
	return nil
}
