// Package pages implements the page objects for the Twitch mobile web flow
// on top of a browser session: a base wrapper with wait-then-act semantics
// and bounded retries, plus one object per logical screen.
package pages

import (
	"fmt"

	"github.com/chromedp/chromedp"
)

// Strategy selects how a locator expression is resolved.
type Strategy int

const (
	// CSS resolves the expression with querySelector semantics.
	CSS Strategy = iota
	// XPath resolves the expression with DOM.performSearch.
	XPath
)

// Locator names a single element on a page. Alt, when set, is tried after
// the primary expression has exhausted its retries.
type Locator struct {
	Name string
	By   Strategy
	Expr string
	Alt  *Locator
}

// opt returns the chromedp query option for the locator strategy.
func (l Locator) opt() chromedp.QueryOption {
	if l.By == XPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func (l Locator) String() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Expr)
}

// clickScript returns a JavaScript expression that locates the element and
// clicks it, reporting whether an element was found. Used as the last
// fallback when native clicks keep failing.
func (l Locator) clickScript() string {
	if l.By == XPath {
		return fmt.Sprintf(`(() => {
			const el = document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
			if (!el) return false;
			el.click();
			return true;
		})()`, l.Expr)
	}
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.click();
		return true;
	})()`, l.Expr)
}
