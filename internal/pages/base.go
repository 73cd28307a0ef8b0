package pages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/streamqa/twitchsmoke/internal/browser"
	"github.com/streamqa/twitchsmoke/internal/config"
)

// Page is the base wrapper all page objects embed. Every action waits for
// its target before acting and applies a bounded timeout; clicks retry a
// fixed number of times before falling back to an alternate locator and
// finally a JavaScript click.
type Page struct {
	sess *browser.Session
	cfg  *config.Config
	log  *zap.Logger
}

// NewPage wraps a browser session for page object use.
func NewPage(sess *browser.Session, cfg *config.Config, log *zap.Logger) *Page {
	return &Page{sess: sess, cfg: cfg, log: log}
}

// Navigate loads the given URL.
func (p *Page) Navigate(url string) error {
	p.log.Info("navigating", zap.String("url", url))
	if err := p.sess.Run(p.cfg.PageLoadTimeout(), chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitReady polls document.readyState until the page reports complete.
// A timeout is logged, not returned: downstream waits on concrete elements
// decide whether the page is actually usable.
func (p *Page) WaitReady(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for {
		var state string
		err := p.sess.Run(5*time.Second, chromedp.Evaluate(`document.readyState`, &state))
		if err == nil && state == "complete" {
			p.log.Debug("page ready")
			return
		}
		if time.Now().After(deadline) {
			p.log.Warn("page did not fully load", zap.Duration("timeout", timeout))
			return
		}
		time.Sleep(250 * time.Millisecond)
	}
}

// Find waits for the element to be present in the DOM.
func (p *Page) Find(loc Locator, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.cfg.ExplicitWait()
	}
	p.log.Debug("finding element", zap.String("locator", loc.String()))
	if err := p.sess.Run(timeout, chromedp.WaitReady(loc.Expr, loc.opt())); err != nil {
		return fmt.Errorf("timeout waiting for %s: %w", loc.Name, err)
	}
	return nil
}

// Click waits for the element to be visible and clicks it. Failed clicks
// are retried with a fixed delay, then the alternate locator is tried, then
// a JavaScript click.
func (p *Page) Click(loc Locator) error {
	click := func(l Locator) error {
		p.log.Debug("clicking element", zap.String("locator", l.String()))
		return p.sess.Run(p.cfg.ExplicitWait(),
			chromedp.WaitVisible(l.Expr, l.opt()),
			chromedp.Click(l.Expr, l.opt(), chromedp.NodeVisible),
		)
	}
	jsClick := func(l Locator) (bool, error) {
		var clicked bool
		err := p.sess.Run(p.cfg.ExplicitWait(), chromedp.Evaluate(l.clickScript(), &clicked))
		return clicked, err
	}

	outcome, err := fallbackClick(p.sess.Context(), loc, p.cfg.Timeouts.MaxRetries, p.cfg.RetryDelay(), click, jsClick)
	if err != nil {
		return fmt.Errorf("failed to click %s: %w", loc.Name, err)
	}

	switch outcome {
	case clickedAlternate:
		p.log.Info("clicked via alternate locator", zap.String("locator", loc.Alt.String()))
	case clickedJS:
		p.log.Info("clicked via JavaScript fallback", zap.String("locator", loc.String()))
	}
	return nil
}

// SendKeys types text into the element, clearing it first when asked.
func (p *Page) SendKeys(loc Locator, text string, clearFirst bool) error {
	p.log.Debug("sending keys", zap.String("locator", loc.String()))

	actions := []chromedp.Action{chromedp.WaitVisible(loc.Expr, loc.opt())}
	if clearFirst {
		actions = append(actions, chromedp.Clear(loc.Expr, loc.opt()))
	}
	actions = append(actions, chromedp.SendKeys(loc.Expr, text, loc.opt()))

	if err := p.sess.Run(p.cfg.ExplicitWait(), actions...); err != nil {
		return fmt.Errorf("failed to send keys to %s: %w", loc.Name, err)
	}
	return nil
}

// PressEnter submits the element by sending the Enter key.
func (p *Page) PressEnter(loc Locator) error {
	if err := p.sess.Run(p.cfg.ExplicitWait(), chromedp.SendKeys(loc.Expr, kb.Enter, loc.opt())); err != nil {
		return fmt.Errorf("failed to press enter on %s: %w", loc.Name, err)
	}
	return nil
}

// PressEscape sends the Escape key to the page, used to dismiss overlays.
func (p *Page) PressEscape() error {
	return p.sess.Run(5*time.Second, chromedp.KeyEvent(kb.Escape))
}

// IsVisible reports whether the element becomes visible within the timeout.
func (p *Page) IsVisible(loc Locator, timeout time.Duration) bool {
	err := p.sess.Run(timeout, chromedp.WaitVisible(loc.Expr, loc.opt()))
	if err != nil {
		p.log.Debug("element not visible", zap.String("locator", loc.String()))
		return false
	}
	return true
}

// WaitGone waits for the element to leave the DOM. A timeout is logged,
// not returned.
func (p *Page) WaitGone(loc Locator, timeout time.Duration) {
	if err := p.sess.Run(timeout, chromedp.WaitNotPresent(loc.Expr, loc.opt())); err != nil {
		p.log.Warn("element did not disappear", zap.String("locator", loc.String()), zap.Duration("timeout", timeout))
	}
}

// ScrollDown scrolls the page by the given pixels, or one viewport height
// when pixels is zero, then pauses briefly for content to load.
func (p *Page) ScrollDown(pixels int) error {
	script := `window.scrollBy(0, window.innerHeight)`
	if pixels > 0 {
		script = fmt.Sprintf(`window.scrollBy(0, %d)`, pixels)
	}
	if err := p.sess.Run(5*time.Second, chromedp.Evaluate(script, nil)); err != nil {
		return fmt.Errorf("failed to scroll down: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}

// ScrollIntoView scrolls the given node into the viewport.
func (p *Page) ScrollIntoView(node *cdp.Node) error {
	err := p.sess.Run(5*time.Second, chromedp.ActionFunc(func(ctx context.Context) error {
		return dom.ScrollIntoViewIfNeeded().WithNodeID(node.NodeID).Do(ctx)
	}))
	if err != nil {
		return fmt.Errorf("failed to scroll node into view: %w", err)
	}
	return nil
}

// Text returns the visible text of the element.
func (p *Page) Text(loc Locator) (string, error) {
	var text string
	err := p.sess.Run(p.cfg.ExplicitWait(), chromedp.Text(loc.Expr, &text, loc.opt(), chromedp.NodeVisible))
	if err != nil {
		return "", fmt.Errorf("failed to get text of %s: %w", loc.Name, err)
	}
	return text, nil
}

// CurrentURL returns the URL of the page the browser is on.
func (p *Page) CurrentURL() (string, error) {
	var url string
	if err := p.sess.Run(5*time.Second, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read current url: %w", err)
	}
	return url, nil
}

// Screenshot captures the viewport and writes it into the screenshot
// directory under the given file name, returning the full path.
func (p *Page) Screenshot(filename string) (string, error) {
	var buf []byte
	if err := p.sess.Run(p.cfg.ExplicitWait(), chromedp.CaptureScreenshot(&buf)); err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}

	path := filepath.Join(p.cfg.Artifacts.ScreenshotDir, filename)
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return "", fmt.Errorf("failed to save screenshot: %w", err)
	}

	p.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}
