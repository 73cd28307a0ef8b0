package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/device"
	"go.uber.org/zap"

	"github.com/streamqa/twitchsmoke/internal/config"
)

// Session owns one browser instance. A session lives for exactly one test
// and must be closed when the test finishes. All actions on a session are
// strictly sequential.
type Session struct {
	cfg    *config.Config
	dev    config.DeviceProfile
	log    *zap.Logger
	ctx    context.Context
	cancel func()
}

// NewSession starts a browser configured for the given device profile.
func NewSession(parent context.Context, cfg *config.Config, dev config.DeviceProfile, log *zap.Logger) (*Session, error) {
	log.Info("starting browser session",
		zap.String("device", dev.Name),
		zap.Bool("headless", cfg.Browser.Headless),
		zap.Bool("mobile_emulation", cfg.Browser.MobileEmulation),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, Options(cfg, dev)...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		cfg: cfg,
		dev: dev,
		log: log,
		ctx: ctx,
		cancel: func() {
			ctxCancel()
			allocCancel()
		},
	}

	if cfg.Browser.MobileEmulation {
		if err := s.emulateDevice(); err != nil {
			s.cancel()
			return nil, fmt.Errorf("failed to enable mobile emulation: %w", err)
		}
	}

	return s, nil
}

// emulateDevice applies the device viewport and user agent overrides.
func (s *Session) emulateDevice() error {
	info := device.Info{
		Name:      s.dev.Name,
		UserAgent: s.dev.UserAgent,
		Width:     s.dev.Width,
		Height:    s.dev.Height,
		Scale:     s.dev.PixelRatio,
		Mobile:    true,
		Touch:     true,
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.PageLoadTimeout())
	defer cancel()

	return chromedp.Run(ctx, chromedp.Emulate(info))
}

// Device returns the device profile the session emulates.
func (s *Session) Device() config.DeviceProfile {
	return s.dev
}

// Run executes actions against the browser with the given timeout.
func (s *Session) Run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Context exposes the underlying browser context for callers that manage
// their own deadlines.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close tears down the browser. Safe to call once per session.
func (s *Session) Close() {
	s.log.Info("closing browser session", zap.String("device", s.dev.Name))
	s.cancel()
}
