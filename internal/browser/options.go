// Package browser provides shared chromedp configuration and the browser
// session factory used by every test worker.
package browser

import (
	"github.com/chromedp/chromedp"

	"github.com/streamqa/twitchsmoke/internal/config"
)

// Options returns chromedp allocator options for a suite session.
// All browser instances go through this so automation-detection and
// stability flags stay consistent across workers.
func Options(cfg *config.Config, dev config.DeviceProfile) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Browser.Headless),

		// Prevent navigator.webdriver = true detection
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		// Suppress permission prompts that would block the flow
		chromedp.Flag("deny-permission-prompts", true),
		chromedp.Flag("disable-notifications", true),

		// Stability flags
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	if cfg.Browser.MobileEmulation {
		opts = append(opts, chromedp.UserAgent(dev.UserAgent))
	} else {
		opts = append(opts, chromedp.WindowSize(1920, 1080))
	}

	if cfg.Browser.Headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	return opts
}
